package reconcile_schedule

import (
	"context"

	reconcileSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/reconcile_schedule"
)

type ReconcileScheduleUseCase interface {
	Execute(ctx context.Context, req *reconcileSchedule.Request) (*reconcileSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
