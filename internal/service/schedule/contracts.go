package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	Get(ctx context.Context, instructorID int64) (*domain.WeeklyAvailability, error)
	UpsertDay(ctx context.Context, instructorID int64, weekday domain.Weekday, day domain.DayAvailability) error
	ReplaceAll(ctx context.Context, instructorID int64, week domain.WeeklyAvailability) error
}

// TemplateRepository интерфейс репозитория шаблонов расписания
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleTemplate, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.ScheduleTemplate, error)
	ClearDefault(ctx context.Context, instructorID int64) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
