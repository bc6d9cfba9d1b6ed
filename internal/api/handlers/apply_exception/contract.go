package apply_exception

import (
	"context"

	applyException "github.com/m04kA/DS-ScheduleService/internal/usecase/apply_exception"
)

type ApplyExceptionUseCase interface {
	Execute(ctx context.Context, req *applyException.Request) (*applyException.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
