package process_cancellation_request

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations/models"
)

type CancellationService interface {
	Process(ctx context.Context, instructorID int64, requestID uuid.UUID, req *models.ProcessRequest) (*models.ProcessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
