package cancellations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

// CancellationRepository интерфейс репозитория запросов на отмену
type CancellationRepository interface {
	Create(ctx context.Context, req *domain.CancellationRequest) (*domain.CancellationRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CancellationRequest, error)
	ListByInstructor(ctx context.Context, instructorID int64, status *domain.CancellationStatus) ([]*domain.CancellationRequest, error)
	Process(ctx context.Context, req *domain.CancellationRequest) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
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
