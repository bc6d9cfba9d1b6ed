package get_exceptions

import (
	"context"

	"github.com/m04kA/DS-ScheduleService/internal/service/exceptions/models"
)

type ExceptionService interface {
	List(ctx context.Context, instructorID int64) (*models.ExceptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
