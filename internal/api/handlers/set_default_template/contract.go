package set_default_template

import (
	"context"

	"github.com/google/uuid"
)

type ScheduleService interface {
	SetDefaultTemplate(ctx context.Context, instructorID int64, templateID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
