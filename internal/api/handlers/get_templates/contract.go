package get_templates

import (
	"context"

	"github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListTemplates(ctx context.Context, instructorID int64) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
