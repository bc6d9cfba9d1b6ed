package reconcile_schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/internal/integrations/notifyservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// List получает слоты инструктора за период
	List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
	// CreateBatch вставляет сгенерированные слоты
	CreateBatch(ctx context.Context, slots []*domain.Slot) error
	// DeleteAvailable удаляет слоты в статусе available из списка
	DeleteAvailable(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	Get(ctx context.Context, instructorID int64) (*domain.WeeklyAvailability, error)
}

// ExceptionRepository интерфейс репозитория исключений расписания
type ExceptionRepository interface {
	ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.Exception, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс для отправки сводки реконсиляции
type Notifier interface {
	NotifyReconcile(ctx context.Context, summary *notifyservice.ReconcileSummary) error
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
