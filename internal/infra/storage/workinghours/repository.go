package workinghours

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/DS-ScheduleService/pkg/txmanager"
)

// Repository репозиторий рабочих часов.
// Хранит по одной строке на пару (инструктор, день недели); интервалы
// сериализуются в JSONB.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает недельное расписание инструктора.
// Возвращает ErrWorkingHoursNotFound, если расписание ещё не создано.
func (r *Repository) Get(ctx context.Context, instructorID int64) (*domain.WeeklyAvailability, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"enabled",
		"intervals",
		"slot_duration_minutes",
		"break_duration_minutes",
	).
		From("working_hours").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var week domain.WeeklyAvailability
	found := 0

	for rows.Next() {
		var (
			weekdayStr    string
			enabled       bool
			intervalsJSON []byte
			slotDuration  int
			breakDuration int
		)

		if err := rows.Scan(&weekdayStr, &enabled, &intervalsJSON, &slotDuration, &breakDuration); err != nil {
			return nil, fmt.Errorf("%w: Get - scan: %v", ErrScanRow, err)
		}

		weekday, err := domain.ParseWeekday(weekdayStr)
		if err != nil {
			return nil, fmt.Errorf("%w: Get - unknown weekday %q", ErrScanRow, weekdayStr)
		}

		var intervals []domain.TimeInterval
		if len(intervalsJSON) > 0 {
			if err := json.Unmarshal(intervalsJSON, &intervals); err != nil {
				return nil, fmt.Errorf("%w: Get - decode intervals: %v", ErrScanRow, err)
			}
		}

		week.SetDay(weekday, domain.DayAvailability{
			Enabled:              enabled,
			Intervals:            intervals,
			SlotDurationMinutes:  slotDuration,
			BreakDurationMinutes: breakDuration,
		})
		found++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Get - rows error: %v", ErrExecQuery, err)
	}

	if found == 0 {
		return nil, ErrWorkingHoursNotFound
	}

	return &week, nil
}

// UpsertDay заменяет конфигурацию одного дня недели целиком
func (r *Repository) UpsertDay(ctx context.Context, instructorID int64, weekday domain.Weekday, day domain.DayAvailability) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	intervalsJSON, err := json.Marshal(day.Intervals)
	if err != nil {
		return fmt.Errorf("%w: UpsertDay - encode intervals: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns(
			"instructor_id",
			"weekday",
			"enabled",
			"intervals",
			"slot_duration_minutes",
			"break_duration_minutes",
		).
		Values(
			instructorID,
			weekday,
			day.Enabled,
			intervalsJSON,
			day.SlotDurationMinutes,
			day.BreakDurationMinutes,
		).
		Suffix(`ON CONFLICT (instructor_id, weekday) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			intervals = EXCLUDED.intervals,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			break_duration_minutes = EXCLUDED.break_duration_minutes,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertDay - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDay - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceAll заменяет недельное расписание инструктора целиком.
// Вызывается при применении шаблона и при импорте; вызывающая сторона
// отвечает за транзакцию.
func (r *Repository) ReplaceAll(ctx context.Context, instructorID int64, week domain.WeeklyAvailability) error {
	for _, weekday := range domain.AllWeekdays {
		if err := r.UpsertDay(ctx, instructorID, weekday, week.ForWeekday(weekday)); err != nil {
			return fmt.Errorf("ReplaceAll - %s: %w", weekday, err)
		}
	}
	return nil
}
