package get_cancellation_requests

import (
	"context"

	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations/models"
)

type CancellationService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.CancellationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
