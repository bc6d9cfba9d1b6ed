package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots/models"
	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

// Service сервис для работы с отдельными слотами: ручное создание,
// листинг, смена статуса и удаление
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// List получает слоты инструктора за период.
// Слоты отсортированы по дате и времени начала.
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots for instructor=%d, status=%v", req.InstructorID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status=%v for instructor=%d", req.Status, req.InstructorID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for instructor=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d slots for instructor=%d", len(slots), req.InstructorID)
	return models.FromDomainSlotList(slots), nil
}

// Create создаёт слот вручную, вне генератора.
// Слот должен лежать в операционном окне; живой слот дополнительно не
// может пересекаться с другими живыми слотами того же дня. Статус
// задаётся явно (например blocked для ручной брони времени) или
// выводится из запроса: слот с указанным студентом получает booked,
// без студента - available.
func (s *Service) Create(ctx context.Context, instructorID int64, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: instructor=%d, date=%s, time=%s-%s",
		instructorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	slot, err := s.buildSlot(instructorID, req)
	if err != nil {
		s.logger.Warn("Create: validation failed for instructor=%d: %v", instructorID, err)
		return nil, err
	}

	var created *domain.Slot

	// Проверка пересечений и вставка атомарны: параллельное создание
	// не может протащить два пересекающихся слота
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day := domain.DateOnly(slot.Date)
		existing, err := s.slotRepo.List(txCtx, domain.SlotsFilter{
			InstructorID: instructorID,
			StartDate:    &day,
			EndDate:      &day,
		})
		if err != nil {
			return fmt.Errorf("%w: Create - failed to load day slots: %v", ErrInternal, err)
		}

		// Исторические статусы (cancelled, completed) время не занимают
		if slot.IsLive() {
			for _, other := range existing {
				if other.IsLive() && slot.Overlaps(other) {
					return fmt.Errorf("%w: %s-%s overlaps slot %s (%s-%s)",
						ErrSlotConflict, slot.StartTime, slot.EndTime,
						other.ID, other.StartTime, other.EndTime)
				}
			}
		}

		created, err = s.slotRepo.Create(txCtx, slot)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			s.logger.Warn("Create: conflict for instructor=%d: %v", instructorID, err)
			return nil, err
		}
		s.logger.Error("Create: failed for instructor=%d: %v", instructorID, err)
		return nil, err
	}

	s.logger.Info("Create: created slot id=%s for instructor=%d, status=%s", created.ID, instructorID, created.Status)
	return models.FromDomainSlot(created), nil
}

// UpdateStatus меняет статус слота по правилам переходов.
// Бронирование требует указания студента; откат blocked возвращает
// слот в available.
func (s *Service) UpdateStatus(ctx context.Context, instructorID int64, slotID uuid.UUID, req *models.UpdateStatusRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateStatus: instructor=%d, slot=%s, status=%s", instructorID, slotID, req.Status)

	newStatus, err := models.ToDomainSlotStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for slot=%s", req.Status, slotID)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	if newStatus == domain.StatusBooked && req.StudentID == nil {
		s.logger.Warn("UpdateStatus: booking without student for slot=%s", slotID)
		return nil, ErrStudentRequired
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.getOwnedSlot(txCtx, instructorID, slotID)
		if err != nil {
			return err
		}

		if !slot.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, slot.Status, newStatus)
		}

		if err := s.slotRepo.UpdateStatus(txCtx, slotID, newStatus, req.StudentID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrInvalidTransition) {
			s.logger.Warn("UpdateStatus: rejected for slot=%s: %v", slotID, err)
			return nil, err
		}
		s.logger.Error("UpdateStatus: failed for slot=%s: %v", slotID, err)
		return nil, err
	}

	updated, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - failed to reload slot: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: slot=%s is now %s", slotID, updated.Status)
	return models.FromDomainSlot(updated), nil
}

// Delete удаляет слот.
// Физически удаляются только свободные слоты; слоты с историей
// бронирования сохраняются и меняют лишь статус.
func (s *Service) Delete(ctx context.Context, instructorID int64, slotID uuid.UUID) error {
	s.logger.Info("Delete: instructor=%d, slot=%s", instructorID, slotID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.getOwnedSlot(txCtx, instructorID, slotID)
		if err != nil {
			return err
		}

		if !slot.CanBeDeleted() {
			return fmt.Errorf("%w: status=%s", ErrSlotNotDeletable, slot.Status)
		}

		deleted, err := s.slotRepo.DeleteAvailable(txCtx, []uuid.UUID{slotID})
		if err != nil {
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		if deleted == 0 {
			return ErrSlotNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrSlotNotDeletable) {
			s.logger.Warn("Delete: rejected for slot=%s: %v", slotID, err)
			return err
		}
		s.logger.Error("Delete: failed for slot=%s: %v", slotID, err)
		return err
	}

	s.logger.Info("Delete: deleted slot=%s for instructor=%d", slotID, instructorID)
	return nil
}

// buildSlot валидирует запрос и собирает доменный слот
func (s *Service) buildSlot(instructorID int64, req *models.CreateSlotRequest) (*domain.Slot, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	interval := domain.TimeInterval{
		Start: types.TimeString(req.StartTime),
		End:   types.TimeString(req.EndTime),
	}
	if err := interval.Validate(domain.OperatingWindow()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := domain.StatusAvailable
	if req.Status != nil {
		parsed, err := models.ToDomainSlotStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		status = parsed
	} else if req.StudentID != nil {
		status = domain.StatusBooked
	}

	if status == domain.StatusBooked && req.StudentID == nil {
		return nil, ErrStudentRequired
	}

	return &domain.Slot{
		InstructorID:  instructorID,
		Date:          domain.DateOnly(req.Date),
		StartTime:     interval.Start,
		EndTime:       interval.End,
		Status:        status,
		StudentID:     req.StudentID,
		Location:      req.Location,
		Notes:         req.Notes,
		PaymentAmount: req.PaymentAmount,
	}, nil
}

// getOwnedSlot получает слот и проверяет, что он принадлежит инструктору
func (s *Service) getOwnedSlot(ctx context.Context, instructorID int64, slotID uuid.UUID) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: getOwnedSlot - repository error: %v", ErrInternal, err)
	}

	if slot.InstructorID != instructorID {
		return nil, ErrAccessDenied
	}

	return slot, nil
}
