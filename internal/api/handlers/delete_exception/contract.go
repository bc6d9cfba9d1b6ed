package delete_exception

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/service/exceptions/models"
)

type ExceptionService interface {
	Delete(ctx context.Context, instructorID int64, exceptionID uuid.UUID) (*models.DeleteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
