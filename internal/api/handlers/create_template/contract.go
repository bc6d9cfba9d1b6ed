package create_template

import (
	"context"

	"github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateTemplate(ctx context.Context, instructorID int64, req *models.CreateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
