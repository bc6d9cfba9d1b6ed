package get_slots

import (
	"context"

	"github.com/m04kA/DS-ScheduleService/internal/service/slots/models"
)

type SlotService interface {
	List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
