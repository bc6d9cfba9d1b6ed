package apply_template

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
	reconcileSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/reconcile_schedule"
)

type ScheduleService interface {
	ApplyTemplate(ctx context.Context, instructorID int64, templateID uuid.UUID) (*models.WeekResponse, error)
}

// ScheduleReconciler перегенерирует слоты после смены недельного шаблона
type ScheduleReconciler interface {
	Execute(ctx context.Context, req *reconcileSchedule.Request) (*reconcileSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
