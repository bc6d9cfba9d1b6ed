package confirm_exception

import (
	"context"

	"github.com/google/uuid"

	applyException "github.com/m04kA/DS-ScheduleService/internal/usecase/apply_exception"
)

type ApplyExceptionUseCase interface {
	Confirm(ctx context.Context, exceptionID uuid.UUID, req *applyException.ConfirmRequest) (*applyException.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
