package import_schedule

import (
	"context"

	transferSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/transfer_schedule"
)

type TransferScheduleUseCase interface {
	Import(ctx context.Context, instructorID int64, payload *transferSchedule.SchedulePayload) (*transferSchedule.ImportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
