package update_working_hours

import (
	"context"

	"github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateDay(ctx context.Context, instructorID int64, weekday string, req *models.UpdateDayRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
