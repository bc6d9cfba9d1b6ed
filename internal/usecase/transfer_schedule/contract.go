package transfer_schedule

import (
	"context"
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
	CreateBatch(ctx context.Context, slots []*domain.Slot) error
	DeleteByInstructor(ctx context.Context, instructorID int64) error
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	Get(ctx context.Context, instructorID int64) (*domain.WeeklyAvailability, error)
	ReplaceAll(ctx context.Context, instructorID int64, week domain.WeeklyAvailability) error
}

// TemplateRepository интерфейс репозитория шаблонов
type TemplateRepository interface {
	ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.ScheduleTemplate, error)
	Create(ctx context.Context, t *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error)
	DeleteByInstructor(ctx context.Context, instructorID int64) error
}

// ExceptionRepository интерфейс репозитория исключений
type ExceptionRepository interface {
	ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Exception, error)
	Create(ctx context.Context, e *domain.Exception) (*domain.Exception, error)
	DeleteByInstructor(ctx context.Context, instructorID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
