package apply_exception

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	exceptionRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/exception"
)

// UseCase use case применения исключения расписания (отпуск, болезнь,
// праздник): свободные слоты в диапазоне блокируются, занятые только
// попадают в список предупреждений - их отмена требует отдельного
// явного подтверждения, зеркально политике защищённых дней реконсилятора.
type UseCase struct {
	exceptionRepo ExceptionRepository
	slotRepo      SlotRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	exceptionRepo ExceptionRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		exceptionRepo: exceptionRepo,
		slotRepo:      slotRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute создает исключение и применяет его каскад к слотам.
// Повторное применение того же диапазона идемпотентно: запись
// исключения переиспользуется, а уже заблокированные слоты не
// меняются и не попадают в отчёт повторно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	exception, err := buildException(req)
	if err != nil {
		uc.logger.Warn("ApplyException: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ApplyException: instructor=%d, type=%s, range=%s..%s, recurring=%v",
		req.InstructorID, exception.Type,
		exception.StartDate.Format(domain.DateFormat),
		exception.EndDate.Format(domain.DateFormat),
		exception.IsRecurring)

	// 2. Разворачиваем диапазон в конкретные даты.
	// Повторяющиеся исключения раскрываются не дальше чем на год вперёд.
	now := uc.timeProvider.Now()
	dates := exception.Dates(now)

	var resp *Response

	// 3. Сохраняем исключение и применяем каскад атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.findOrCreate(txCtx, exception)
		if err != nil {
			return err
		}

		blockedIDs, warnedIDs, err := uc.applyCascade(txCtx, req.InstructorID, dates)
		if err != nil {
			return err
		}

		affected := unionSlotIDs(created.AffectedSlotIDs, blockedIDs)
		if err := uc.exceptionRepo.UpdateAffectedSlots(txCtx, created.ID, affected); err != nil {
			return fmt.Errorf("%w: failed to record affected slots: %v", ErrInternal, err)
		}

		resp = buildResponse(created.ID, dates, blockedIDs, warnedIDs)
		return nil
	})
	if err != nil {
		uc.logger.Error("ApplyException: instructor=%d failed: %v", req.InstructorID, err)
		return nil, err
	}

	uc.logger.Info("ApplyException: instructor=%d blocked=%d warnedBooked=%d",
		req.InstructorID, len(resp.BlockedSlotIDs), len(resp.WarnedBookedSlotIDs))

	return resp, nil
}

// Confirm выполняет второй, явный шаг каскада: отменяет занятые слоты,
// о которых Execute только предупредил. Вызывается после того, как
// инструктор подтвердил, что готов отменить занятия студентов.
func (uc *UseCase) Confirm(ctx context.Context, exceptionID uuid.UUID, req *ConfirmRequest) (*ConfirmResponse, error) {
	if req.InstructorID <= 0 {
		return nil, fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("ConfirmExceptionCancellations: exception=%s, instructor=%d", exceptionID, req.InstructorID)

	now := uc.timeProvider.Now()

	var resp *ConfirmResponse

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		exception, err := uc.exceptionRepo.GetByID(txCtx, exceptionID)
		if err != nil {
			if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
				return ErrExceptionNotFound
			}
			return fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
		}

		if exception.InstructorID != req.InstructorID {
			return ErrAccessDenied
		}

		dates := exception.Dates(now)

		var cancelledIDs []uuid.UUID
		for _, date := range dates {
			daySlots, err := uc.listDaySlots(txCtx, req.InstructorID, date)
			if err != nil {
				return err
			}
			for _, s := range daySlots {
				if s.Status != domain.StatusBooked {
					continue
				}
				if err := uc.slotRepo.UpdateStatus(txCtx, s.ID, domain.StatusCancelled, nil); err != nil {
					return fmt.Errorf("%w: failed to cancel slot %s: %v", ErrInternal, s.ID, err)
				}
				cancelledIDs = append(cancelledIDs, s.ID)
			}
		}

		affected := append(exception.AffectedSlotIDs, cancelledIDs...)
		if err := uc.exceptionRepo.UpdateAffectedSlots(txCtx, exception.ID, affected); err != nil {
			return fmt.Errorf("%w: failed to record affected slots: %v", ErrInternal, err)
		}

		resp = &ConfirmResponse{ExceptionID: exception.ID.String(), CancelledSlotIDs: []string{}}
		for _, id := range cancelledIDs {
			resp.CancelledSlotIDs = append(resp.CancelledSlotIDs, id.String())
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrExceptionNotFound) || errors.Is(err, ErrAccessDenied) {
			uc.logger.Warn("ConfirmExceptionCancellations: exception=%s: %v", exceptionID, err)
			return nil, err
		}
		uc.logger.Error("ConfirmExceptionCancellations: exception=%s failed: %v", exceptionID, err)
		return nil, err
	}

	uc.logger.Info("ConfirmExceptionCancellations: exception=%s cancelled=%d",
		exceptionID, len(resp.CancelledSlotIDs))

	return resp, nil
}

// findOrCreate возвращает уже существующее исключение с тем же типом и
// диапазоном, если оно есть: повторное применение переиспользует
// запись, а не плодит дубликаты
func (uc *UseCase) findOrCreate(ctx context.Context, exception *domain.Exception) (*domain.Exception, error) {
	existing, err := uc.exceptionRepo.ListByInstructor(ctx, exception.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list exceptions: %v", ErrInternal, err)
	}

	for _, e := range existing {
		if sameException(e, exception) {
			return e, nil
		}
	}

	created, err := uc.exceptionRepo.Create(ctx, exception)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create exception: %v", ErrInternal, err)
	}
	return created, nil
}

func sameException(a, b *domain.Exception) bool {
	if a.Type != b.Type || a.IsRecurring != b.IsRecurring {
		return false
	}
	if !a.StartDate.Equal(b.StartDate) || !a.EndDate.Equal(b.EndDate) {
		return false
	}
	if (a.RecurringPattern == nil) != (b.RecurringPattern == nil) {
		return false
	}
	return a.RecurringPattern == nil || *a.RecurringPattern == *b.RecurringPattern
}

func unionSlotIDs(a, b []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(a)+len(b))
	var union []uuid.UUID
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	return union
}

// applyCascade переводит свободные слоты дат исключения в blocked и
// собирает предупреждения по занятым
func (uc *UseCase) applyCascade(ctx context.Context, instructorID int64, dates []time.Time) (blockedIDs, warnedIDs []uuid.UUID, err error) {
	for _, date := range dates {
		daySlots, err := uc.listDaySlots(ctx, instructorID, date)
		if err != nil {
			return nil, nil, err
		}

		for _, s := range daySlots {
			switch s.Status {
			case domain.StatusAvailable:
				if err := uc.slotRepo.UpdateStatus(ctx, s.ID, domain.StatusBlocked, nil); err != nil {
					return nil, nil, fmt.Errorf("%w: failed to block slot %s: %v", ErrInternal, s.ID, err)
				}
				blockedIDs = append(blockedIDs, s.ID)
			case domain.StatusBooked:
				// Занятый слот не отменяем молча: студент должен
				// получить явное решение инструктора
				warnedIDs = append(warnedIDs, s.ID)
			}
		}
	}
	return blockedIDs, warnedIDs, nil
}

func (uc *UseCase) listDaySlots(ctx context.Context, instructorID int64, date time.Time) ([]*domain.Slot, error) {
	day := domain.DateOnly(date)
	slots, err := uc.slotRepo.List(ctx, domain.SlotsFilter{
		InstructorID: instructorID,
		StartDate:    &day,
		EndDate:      &day,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load slots for %s: %v", ErrInternal, day.Format(domain.DateFormat), err)
	}
	return slots, nil
}

func buildException(req *Request) (*domain.Exception, error) {
	if req.InstructorID <= 0 {
		return nil, fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	exceptionType, err := parseExceptionType(req.Type)
	if err != nil {
		return nil, err
	}

	exception := &domain.Exception{
		InstructorID: req.InstructorID,
		Type:         exceptionType,
		StartDate:    domain.DateOnly(req.StartDate),
		EndDate:      domain.DateOnly(req.EndDate),
		IsRecurring:  req.IsRecurring,
	}

	if req.RecurringPattern != nil {
		pattern := domain.RecurrencePattern(*req.RecurringPattern)
		exception.RecurringPattern = &pattern
	}

	if err := exception.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return exception, nil
}

func parseExceptionType(s string) (domain.ExceptionType, error) {
	for _, t := range domain.AllExceptionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown exception type %q", ErrInvalidInput, s)
}

func buildResponse(exceptionID uuid.UUID, dates []time.Time, blockedIDs, warnedIDs []uuid.UUID) *Response {
	resp := &Response{
		ExceptionID:         exceptionID.String(),
		Dates:               []string{},
		BlockedSlotIDs:      []string{},
		WarnedBookedSlotIDs: []string{},
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format(domain.DateFormat))
	}
	for _, id := range blockedIDs {
		resp.BlockedSlotIDs = append(resp.BlockedSlotIDs, id.String())
	}
	for _, id := range warnedIDs {
		resp.WarnedBookedSlotIDs = append(resp.WarnedBookedSlotIDs, id.String())
	}
	return resp
}
