package export_schedule

import (
	"context"

	transferSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/transfer_schedule"
)

type TransferScheduleUseCase interface {
	Export(ctx context.Context, instructorID int64) (*transferSchedule.SchedulePayload, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
