package cancellations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	cancellationRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/cancellation"
	slotRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations/models"
	"github.com/m04kA/DS-ScheduleService/pkg/ptr"
)

// Service сервис для работы с запросами на отмену занятий.
// Запрос создаёт студент, обрабатывает инструктор; каждый запрос
// обрабатывается ровно один раз.
type Service struct {
	cancellationRepo CancellationRepository
	slotRepo         SlotRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	// reopenOnApprove политика сервиса: возвращать ли время отменённого
	// занятия в продажу новым свободным слотом
	reopenOnApprove bool
	logger          Logger
}

// NewService создает новый экземпляр сервиса запросов на отмену
func NewService(
	cancellationRepo CancellationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	reopenOnApprove bool,
	logger Logger,
) *Service {
	return &Service{
		cancellationRepo: cancellationRepo,
		slotRepo:         slotRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		reopenOnApprove:  reopenOnApprove,
		logger:           logger,
	}
}

// CreateRequest создает запрос студента на отмену забронированного слота
func (s *Service) CreateRequest(ctx context.Context, studentID int64, req *models.CreateRequest) (*models.CancellationResponse, error) {
	s.logger.Info("CreateRequest: student=%d, slot=%s", studentID, req.SlotID)

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		s.logger.Warn("CreateRequest: invalid slot id=%q", req.SlotID)
		return nil, fmt.Errorf("%w: invalid slot id", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		s.logger.Warn("CreateRequest: reason too long for student=%d", studentID)
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	var created *domain.CancellationRequest

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: CreateRequest - failed to get slot: %v", ErrInternal, err)
		}

		if slot.Status != domain.StatusBooked {
			return fmt.Errorf("%w: status=%s", ErrSlotNotBooked, slot.Status)
		}
		if slot.StudentID == nil || *slot.StudentID != studentID {
			return ErrAccessDenied
		}

		request := &domain.CancellationRequest{
			SlotID:       slot.ID,
			InstructorID: slot.InstructorID,
			StudentID:    studentID,
			RequestDate:  s.timeProvider.Now(),
			Reason:       req.Reason,
			Status:       domain.CancellationPending,
		}

		created, err = s.cancellationRepo.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("%w: CreateRequest - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrSlotNotBooked) || errors.Is(err, ErrAccessDenied) {
			s.logger.Warn("CreateRequest: rejected for student=%d, slot=%s: %v", studentID, slotID, err)
			return nil, err
		}
		s.logger.Error("CreateRequest: failed for student=%d, slot=%s: %v", studentID, slotID, err)
		return nil, err
	}

	s.logger.Info("CreateRequest: created request id=%s for slot=%s", created.ID, slotID)

	resp := models.FromDomainCancellation(created)
	return &resp, nil
}

// List получает запросы на отмену инструктора.
// Опционально фильтрует по статусу.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.CancellationListResponse, error) {
	s.logger.Info("List: fetching cancellation requests for instructor=%d, status=%v", req.InstructorID, req.Status)

	var status *domain.CancellationStatus
	if req.Status != nil {
		parsed, err := models.ToDomainCancellationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for instructor=%d", *req.Status, req.InstructorID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	requests, err := s.cancellationRepo.ListByInstructor(ctx, req.InstructorID, status)
	if err != nil {
		s.logger.Error("List: repository error for instructor=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d requests for instructor=%d", len(requests), req.InstructorID)
	return models.FromDomainCancellationList(requests), nil
}

// Process обрабатывает запрос на отмену.
// Одобрение отменяет занятие; отклонение требует комментария для
// студента. Повторная обработка невозможна: approved и rejected -
// терминальные состояния.
func (s *Service) Process(ctx context.Context, instructorID int64, requestID uuid.UUID, req *models.ProcessRequest) (*models.ProcessResponse, error) {
	s.logger.Info("Process: instructor=%d, request=%s, action=%s", instructorID, requestID, req.Action)

	if req.Action != models.ActionApprove && req.Action != models.ActionReject {
		s.logger.Warn("Process: invalid action=%q for request=%s", req.Action, requestID)
		return nil, fmt.Errorf("%w: action must be %q or %q", ErrInvalidInput, models.ActionApprove, models.ActionReject)
	}
	if req.Action == models.ActionReject && (req.AdminComment == nil || *req.AdminComment == "") {
		s.logger.Warn("Process: rejection without comment for request=%s", requestID)
		return nil, ErrCommentRequired
	}
	if req.AdminComment != nil && len(*req.AdminComment) > domain.MaxAdminCommentLength {
		return nil, fmt.Errorf("%w: admin comment exceeds %d characters", ErrInvalidInput, domain.MaxAdminCommentLength)
	}

	var resp *models.ProcessResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		request, err := s.cancellationRepo.GetByID(txCtx, requestID)
		if err != nil {
			if errors.Is(err, cancellationRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Process - failed to get request: %v", ErrInternal, err)
		}

		if request.InstructorID != instructorID {
			return ErrAccessDenied
		}
		if !request.CanBeProcessed() {
			return fmt.Errorf("%w: status=%s", ErrAlreadyProcessed, request.Status)
		}

		now := s.timeProvider.Now()
		request.ProcessedAt = &now
		request.ProcessedBy = &instructorID
		request.AdminComment = req.AdminComment
		request.RefundAmount = req.RefundAmount

		var reopenedSlotID *string

		if req.Action == models.ActionApprove {
			request.Status = domain.CancellationApproved

			reopened, err := s.approveCancellation(txCtx, request, req.ReopenSlot)
			if err != nil {
				return err
			}
			reopenedSlotID = reopened
		} else {
			request.Status = domain.CancellationRejected
		}

		if err := s.cancellationRepo.Process(txCtx, request); err != nil {
			if errors.Is(err, cancellationRepo.ErrRequestNotFound) {
				return ErrAlreadyProcessed
			}
			return fmt.Errorf("%w: Process - repository error: %v", ErrInternal, err)
		}

		resp = &models.ProcessResponse{
			Request:        models.FromDomainCancellation(request),
			ReopenedSlotID: reopenedSlotID,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) || errors.Is(err, ErrAccessDenied) ||
			errors.Is(err, ErrAlreadyProcessed) || errors.Is(err, ErrSlotNotFound) {
			s.logger.Warn("Process: rejected for request=%s: %v", requestID, err)
			return nil, err
		}
		s.logger.Error("Process: failed for request=%s: %v", requestID, err)
		return nil, err
	}

	s.logger.Info("Process: request=%s is now %s", requestID, resp.Request.Status)
	return resp, nil
}

// approveCancellation отменяет занятие и, по политике, возвращает его
// время в продажу новым свободным слотом. Исходный слот сохраняет
// историю: он остаётся в статусе cancelled со студентом.
func (s *Service) approveCancellation(ctx context.Context, request *domain.CancellationRequest, reopenOverride *bool) (*string, error) {
	slot, err := s.slotRepo.GetByID(ctx, request.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: approveCancellation - failed to get slot: %v", ErrInternal, err)
	}

	if slot.CanTransitionTo(domain.StatusCancelled) {
		if err := s.slotRepo.UpdateStatus(ctx, slot.ID, domain.StatusCancelled, nil); err != nil {
			return nil, fmt.Errorf("%w: approveCancellation - failed to cancel slot: %v", ErrInternal, err)
		}
	}

	reopen := s.reopenOnApprove
	if reopenOverride != nil {
		reopen = *reopenOverride
	}
	if !reopen {
		return nil, nil
	}

	replacement := &domain.Slot{
		InstructorID: slot.InstructorID,
		Date:         slot.Date,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Status:       domain.StatusAvailable,
		Location:     slot.Location,
	}

	created, err := s.slotRepo.Create(ctx, replacement)
	if err != nil {
		return nil, fmt.Errorf("%w: approveCancellation - failed to reopen slot: %v", ErrInternal, err)
	}

	return ptr.Ptr(created.ID.String()), nil
}
