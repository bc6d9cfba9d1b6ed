package transfer_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	whRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/workinghours"
	"github.com/m04kA/DS-ScheduleService/pkg/ptr"
)

// UseCase use case экспорта и импорта полного расписания инструктора.
// Экспорт собирает слоты, рабочие часы, шаблоны и исключения в один
// JSON-снимок; импорт заменяет состояние целиком в одной транзакции,
// без слияния со старыми данными.
type UseCase struct {
	slotRepo      SlotRepository
	whRepo        WorkingHoursRepository
	templateRepo  TemplateRepository
	exceptionRepo ExceptionRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	whRepo WorkingHoursRepository,
	templateRepo TemplateRepository,
	exceptionRepo ExceptionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		whRepo:        whRepo,
		templateRepo:  templateRepo,
		exceptionRepo: exceptionRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Export собирает полный снимок расписания инструктора
func (uc *UseCase) Export(ctx context.Context, instructorID int64) (*SchedulePayload, error) {
	if instructorID <= 0 {
		return nil, fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("ExportSchedule: instructor=%d", instructorID)

	// 1. Слоты всех статусов, без ограничения по датам
	slots, err := uc.slotRepo.List(ctx, domain.SlotsFilter{InstructorID: instructorID})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 2. Рабочие часы: если инструктор их ещё не настраивал, в снимок
	// попадает стандартная неделя
	week, err := uc.whRepo.Get(ctx, instructorID)
	if err != nil {
		if !errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
			return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}
		defaultWeek := domain.DefaultWeeklyAvailability()
		week = &defaultWeek
	}

	// 3. Шаблоны и исключения
	templates, err := uc.templateRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrInternal, err)
	}

	exceptions, err := uc.exceptionRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list exceptions: %v", ErrInternal, err)
	}

	payload := &SchedulePayload{
		Slots:        make([]SlotPayload, 0, len(slots)),
		WorkingHours: *week,
		Templates:    make([]TemplatePayload, 0, len(templates)),
		Exceptions:   make([]ExceptionPayload, 0, len(exceptions)),
		ExportDate:   uc.timeProvider.Now().UTC().Format(time.RFC3339),
	}
	for _, s := range slots {
		payload.Slots = append(payload.Slots, slotToPayload(s))
	}
	for _, t := range templates {
		payload.Templates = append(payload.Templates, templateToPayload(t))
	}
	for _, e := range exceptions {
		payload.Exceptions = append(payload.Exceptions, exceptionToPayload(e))
	}

	uc.logger.Info("ExportSchedule: instructor=%d slots=%d templates=%d exceptions=%d",
		instructorID, len(payload.Slots), len(payload.Templates), len(payload.Exceptions))

	return payload, nil
}

// Import заменяет расписание инструктора содержимым снимка.
// Валидация выполняется до открытия транзакции: некорректный снимок
// не трогает существующие данные вовсе.
func (uc *UseCase) Import(ctx context.Context, instructorID int64, payload *SchedulePayload) (*ImportResponse, error) {
	// 1. Валидация входных данных
	if instructorID <= 0 {
		return nil, fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is required", ErrInvalidPayload)
	}

	uc.logger.Info("ImportSchedule: instructor=%d slots=%d templates=%d exceptions=%d",
		instructorID, len(payload.Slots), len(payload.Templates), len(payload.Exceptions))

	if err := payload.WorkingHours.Validate(); err != nil {
		return nil, fmt.Errorf("%w: working hours: %v", ErrInvalidPayload, err)
	}

	slots := make([]*domain.Slot, 0, len(payload.Slots))
	for i, p := range payload.Slots {
		s, err := slotFromPayload(instructorID, p)
		if err != nil {
			return nil, fmt.Errorf("slot #%d: %w", i, err)
		}
		slots = append(slots, s)
	}

	templates := make([]*domain.ScheduleTemplate, 0, len(payload.Templates))
	for i, p := range payload.Templates {
		t, err := templateFromPayload(instructorID, p)
		if err != nil {
			return nil, fmt.Errorf("template #%d: %w", i, err)
		}
		templates = append(templates, t)
	}

	exceptions := make([]*domain.Exception, 0, len(payload.Exceptions))
	for i, p := range payload.Exceptions {
		e, err := exceptionFromPayload(instructorID, p)
		if err != nil {
			return nil, fmt.Errorf("exception #%d: %w", i, err)
		}
		exceptions = append(exceptions, e)
	}

	// 2. Полная замена состояния в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.slotRepo.DeleteByInstructor(txCtx, instructorID); err != nil {
			return fmt.Errorf("%w: failed to clear slots: %v", ErrInternal, err)
		}
		if err := uc.templateRepo.DeleteByInstructor(txCtx, instructorID); err != nil {
			return fmt.Errorf("%w: failed to clear templates: %v", ErrInternal, err)
		}
		if err := uc.exceptionRepo.DeleteByInstructor(txCtx, instructorID); err != nil {
			return fmt.Errorf("%w: failed to clear exceptions: %v", ErrInternal, err)
		}

		if err := uc.whRepo.ReplaceAll(txCtx, instructorID, payload.WorkingHours); err != nil {
			return fmt.Errorf("%w: failed to replace working hours: %v", ErrInternal, err)
		}

		if len(slots) > 0 {
			if err := uc.slotRepo.CreateBatch(txCtx, slots); err != nil {
				return fmt.Errorf("%w: failed to import slots: %v", ErrInternal, err)
			}
		}
		for _, t := range templates {
			if _, err := uc.templateRepo.Create(txCtx, t); err != nil {
				return fmt.Errorf("%w: failed to import template %q: %v", ErrInternal, t.Name, err)
			}
		}
		for _, e := range exceptions {
			if _, err := uc.exceptionRepo.Create(txCtx, e); err != nil {
				return fmt.Errorf("%w: failed to import exception: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("ImportSchedule: instructor=%d failed: %v", instructorID, err)
		return nil, err
	}

	uc.logger.Info("ImportSchedule: instructor=%d done", instructorID)

	return &ImportResponse{
		SlotsImported:      len(slots),
		TemplatesImported:  len(templates),
		ExceptionsImported: len(exceptions),
	}, nil
}

func templateToPayload(t *domain.ScheduleTemplate) TemplatePayload {
	return TemplatePayload{
		ID:        t.ID.String(),
		Name:      t.Name,
		Week:      t.Week,
		IsDefault: t.IsDefault,
	}
}

func templateFromPayload(instructorID int64, p TemplatePayload) (*domain.ScheduleTemplate, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrInvalidPayload)
	}
	if err := p.Week.Validate(); err != nil {
		return nil, fmt.Errorf("%w: template week: %v", ErrInvalidPayload, err)
	}

	t := &domain.ScheduleTemplate{
		InstructorID: instructorID,
		Name:         p.Name,
		Week:         p.Week,
		IsDefault:    p.IsDefault,
	}
	if id, err := uuid.Parse(p.ID); err == nil {
		t.ID = id
	}
	return t, nil
}

func exceptionToPayload(e *domain.Exception) ExceptionPayload {
	p := ExceptionPayload{
		ID:          e.ID.String(),
		Type:        string(e.Type),
		StartDate:   e.StartDate.Format(domain.DateFormat),
		EndDate:     e.EndDate.Format(domain.DateFormat),
		IsRecurring: e.IsRecurring,
	}
	if e.RecurringPattern != nil {
		p.RecurringPattern = ptr.Ptr(string(*e.RecurringPattern))
	}
	return p
}

func exceptionFromPayload(instructorID int64, p ExceptionPayload) (*domain.Exception, error) {
	startDate, err := time.Parse(domain.DateFormat, p.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: exception start date %q: %v", ErrInvalidPayload, p.StartDate, err)
	}
	endDate, err := time.Parse(domain.DateFormat, p.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: exception end date %q: %v", ErrInvalidPayload, p.EndDate, err)
	}

	e := &domain.Exception{
		InstructorID: instructorID,
		Type:         domain.ExceptionType(p.Type),
		StartDate:    startDate,
		EndDate:      endDate,
		IsRecurring:  p.IsRecurring,
	}
	if p.RecurringPattern != nil {
		pattern := domain.RecurrencePattern(*p.RecurringPattern)
		e.RecurringPattern = &pattern
	}
	if id, err := uuid.Parse(p.ID); err == nil {
		e.ID = id
	}

	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return e, nil
}
