package update_slot_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/service/slots/models"
)

type SlotService interface {
	UpdateStatus(ctx context.Context, instructorID int64, slotID uuid.UUID, req *models.UpdateStatusRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
