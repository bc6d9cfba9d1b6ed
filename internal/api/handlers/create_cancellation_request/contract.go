package create_cancellation_request

import (
	"context"

	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations/models"
)

type CancellationService interface {
	CreateRequest(ctx context.Context, studentID int64, req *models.CreateRequest) (*models.CancellationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
