package exceptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	exceptionRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/exception"
	slotRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/DS-ScheduleService/internal/service/exceptions/models"
)

// Service сервис для просмотра и удаления исключений расписания
type Service struct {
	exceptionRepo ExceptionRepository
	slotRepo      SlotRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса исключений
func NewService(
	exceptionRepo ExceptionRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		exceptionRepo: exceptionRepo,
		slotRepo:      slotRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// List получает все исключения инструктора
func (s *Service) List(ctx context.Context, instructorID int64) (*models.ExceptionListResponse, error) {
	s.logger.Info("List: fetching exceptions for instructor=%d", instructorID)

	exceptions, err := s.exceptionRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("List: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d exceptions for instructor=%d", len(exceptions), instructorID)
	return models.FromDomainExceptionList(exceptions), nil
}

// Delete удаляет исключение и возвращает в продажу слоты, которые оно
// заблокировало. Освобождаются только слоты, всё ещё стоящие в blocked:
// отменённые занятия и слоты, перекрытые другими исключениями, не трогаются.
func (s *Service) Delete(ctx context.Context, instructorID int64, exceptionID uuid.UUID) (*models.DeleteResponse, error) {
	s.logger.Info("Delete: instructor=%d, exception=%s", instructorID, exceptionID)

	var resp *models.DeleteResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		exception, err := s.exceptionRepo.GetByID(txCtx, exceptionID)
		if err != nil {
			if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
				return ErrExceptionNotFound
			}
			return fmt.Errorf("%w: Delete - failed to get exception: %v", ErrInternal, err)
		}

		if exception.InstructorID != instructorID {
			return ErrAccessDenied
		}

		released, err := s.releaseBlockedSlots(txCtx, exception.AffectedSlotIDs)
		if err != nil {
			return err
		}

		if err := s.exceptionRepo.Delete(txCtx, exceptionID); err != nil {
			if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
				return ErrExceptionNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		resp = &models.DeleteResponse{
			ExceptionID:     exceptionID.String(),
			ReleasedSlotIDs: released,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrExceptionNotFound) || errors.Is(err, ErrAccessDenied) {
			s.logger.Warn("Delete: rejected for exception=%s: %v", exceptionID, err)
			return nil, err
		}
		s.logger.Error("Delete: failed for exception=%s: %v", exceptionID, err)
		return nil, err
	}

	s.logger.Info("Delete: removed exception=%s, released %d slots", exceptionID, len(resp.ReleasedSlotIDs))
	return resp, nil
}

func (s *Service) releaseBlockedSlots(ctx context.Context, slotIDs []uuid.UUID) ([]string, error) {
	released := []string{}

	for _, id := range slotIDs {
		slot, err := s.slotRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: releaseBlockedSlots - failed to get slot %s: %v", ErrInternal, id, err)
		}

		if slot.Status != domain.StatusBlocked {
			continue
		}

		if err := s.slotRepo.UpdateStatus(ctx, id, domain.StatusAvailable, nil); err != nil {
			return nil, fmt.Errorf("%w: releaseBlockedSlots - failed to release slot %s: %v", ErrInternal, id, err)
		}
		released = append(released, id.String())
	}

	return released, nil
}
