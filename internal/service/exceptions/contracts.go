package exceptions

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

// ExceptionRepository интерфейс репозитория исключений
type ExceptionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exception, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Exception, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SlotStatus, studentID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
