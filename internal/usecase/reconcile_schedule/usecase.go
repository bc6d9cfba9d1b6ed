package reconcile_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	whRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/workinghours"
	"github.com/m04kA/DS-ScheduleService/internal/integrations/notifyservice"
)

// UseCase use case реконсиляции расписания: превращает недельный шаблон
// рабочих часов в конкретные слоты внутри окна, не разрушая
// существующие бронирования. Запускается при изменении рабочих часов,
// применении шаблона и при периодическом продлении горизонта.
type UseCase struct {
	slotRepo      SlotRepository
	whRepo        WorkingHoursRepository
	exceptionRepo ExceptionRepository
	txManager     TransactionManager
	notifier      Notifier
	timeProvider  TimeProvider
	horizonDays   int
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	whRepo WorkingHoursRepository,
	exceptionRepo ExceptionRepository,
	txManager TransactionManager,
	notifier Notifier,
	horizonDays int,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	return &UseCase{
		slotRepo:      slotRepo,
		whRepo:        whRepo,
		exceptionRepo: exceptionRepo,
		txManager:     txManager,
		notifier:      notifier,
		timeProvider:  &RealTimeProvider{},
		horizonDays:   horizonDays,
		logger:        logger,
	}
}

// Execute выполняет реконсиляцию расписания инструктора.
// Загрузка слотов, планирование и применение плана идут в одной
// сериализуемой транзакции, чтобы защита занятых дней считалась по
// актуальному состоянию, а не по снимку на начало редактирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReconcileSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем окно реконсиляции
	now := uc.timeProvider.Now()
	startDate, endDate, err := resolveDateRange(req, now, uc.horizonDays)
	if err != nil {
		uc.logger.Warn("ReconcileSchedule: invalid date range: %v", err)
		return nil, err
	}

	uc.logger.Info("ReconcileSchedule: instructor=%d, window=%s..%s",
		req.InstructorID, startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))

	var plan *Plan

	// 3. Планируем и применяем изменения атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем рабочие часы
		week, err := uc.whRepo.Get(txCtx, req.InstructorID)
		if err != nil {
			if errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
				return ErrWorkingHoursNotFound
			}
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}

		// 3.2. Загружаем исключения: закрытые ими даты не генерируют
		// слоты, иначе прогон заново открыл бы отпуск для записи
		exceptions, err := uc.exceptionRepo.ListByInstructor(txCtx, req.InstructorID)
		if err != nil {
			return fmt.Errorf("%w: failed to load exceptions: %v", ErrInternal, err)
		}

		// 3.3. Загружаем актуальные слоты окна
		existing, err := uc.slotRepo.List(txCtx, domain.SlotsFilter{
			InstructorID: req.InstructorID,
			StartDate:    &startDate,
			EndDate:      &endDate,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
		}

		// 3.4. Строим план
		plan = BuildPlan(req.InstructorID, *week, existing, startDate, endDate, coveredDates(exceptions, startDate))

		// 3.5. Применяем: удаление строго до вставки, чтобы ни один
		// наблюдатель не увидел дублирующиеся свободные слоты
		if _, err := uc.slotRepo.DeleteAvailable(txCtx, plan.ToDelete); err != nil {
			return fmt.Errorf("%w: failed to delete stale slots: %v", ErrInternal, err)
		}
		if err := uc.slotRepo.CreateBatch(txCtx, plan.ToCreate); err != nil {
			return fmt.Errorf("%w: failed to insert generated slots: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWorkingHoursNotFound) {
			uc.logger.Warn("ReconcileSchedule: instructor=%d has no working hours", req.InstructorID)
			return nil, ErrWorkingHoursNotFound
		}
		uc.logger.Error("ReconcileSchedule: instructor=%d failed: %v", req.InstructorID, err)
		return nil, err
	}

	for _, warning := range plan.Warnings {
		uc.logger.Warn("ReconcileSchedule: instructor=%d: %s", req.InstructorID, warning)
	}

	resp := buildResponse(req.InstructorID, startDate, endDate, plan)

	uc.logger.Info("ReconcileSchedule: instructor=%d generated=%d regenerated=%d skipped=%d",
		req.InstructorID, resp.GeneratedCount, len(resp.RegeneratedDates), len(resp.SkippedDates))

	// 4. Отправляем сводку в сервис уведомлений; сбой доставки не
	// отменяет уже применённый результат
	if uc.notifier != nil {
		summary := &notifyservice.ReconcileSummary{
			InstructorID:     req.InstructorID,
			GeneratedCount:   resp.GeneratedCount,
			RegeneratedDates: resp.RegeneratedDates,
			SkippedDates:     resp.SkippedDates,
			Warnings:         resp.Warnings,
		}
		for _, d := range resp.ProtectedDayDetails {
			summary.ProtectedDayDetails = append(summary.ProtectedDayDetails, notifyservice.ProtectedDayDetail{
				Date:        d.Date,
				BookedSlots: d.BookedSlots,
			})
		}
		if err := uc.notifier.NotifyReconcile(ctx, summary); err != nil {
			uc.logger.Warn("ReconcileSchedule: failed to deliver summary for instructor=%d: %v",
				req.InstructorID, err)
		}
	}

	return resp, nil
}

func validateRequest(req *Request) error {
	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate == nil || req.StartDate == nil && req.EndDate != nil {
		return fmt.Errorf("%w: startDate and endDate must be set together", ErrInvalidInput)
	}
	return nil
}

func resolveDateRange(req *Request, now time.Time, horizonDays int) (time.Time, time.Time, error) {
	if req.StartDate == nil {
		start := domain.DateOnly(now)
		return start, start.AddDate(0, 0, horizonDays-1), nil
	}

	start := domain.DateOnly(*req.StartDate)
	end := domain.DateOnly(*req.EndDate)

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate before startDate", ErrInvalidDateRange)
	}
	if end.Sub(start) > time.Duration(domain.MaxReconcileRangeDays)*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: window exceeds %d days", ErrInvalidDateRange, domain.MaxReconcileRangeDays)
	}

	return start, end, nil
}

func buildResponse(instructorID int64, startDate, endDate time.Time, plan *Plan) *Response {
	resp := &Response{
		InstructorID:        instructorID,
		StartDate:           startDate.Format(domain.DateFormat),
		EndDate:             endDate.Format(domain.DateFormat),
		GeneratedCount:      len(plan.ToCreate),
		RegeneratedDates:    []string{},
		SkippedDates:        []string{},
		ProtectedDayDetails: []ProtectedDayDetail{},
		Warnings:            plan.Warnings,
	}

	for _, d := range plan.RegeneratedDates {
		resp.RegeneratedDates = append(resp.RegeneratedDates, d.Format(domain.DateFormat))
	}
	for _, d := range plan.SkippedDates {
		resp.SkippedDates = append(resp.SkippedDates, d.Format(domain.DateFormat))
	}
	for _, d := range plan.ProtectedDays {
		resp.ProtectedDayDetails = append(resp.ProtectedDayDetails, ProtectedDayDetail{
			Date:        d.Date.Format(domain.DateFormat),
			BookedSlots: d.BookedSlots,
		})
	}

	return resp
}
