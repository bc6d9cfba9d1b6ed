package apply_exception

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

// ExceptionRepository интерфейс репозитория исключений
type ExceptionRepository interface {
	Create(ctx context.Context, e *domain.Exception) (*domain.Exception, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exception, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Exception, error)
	UpdateAffectedSlots(ctx context.Context, id uuid.UUID, slotIDs []uuid.UUID) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SlotStatus, studentID *int64) error
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
