package delete_slot

import (
	"context"

	"github.com/google/uuid"
)

type SlotService interface {
	Delete(ctx context.Context, instructorID int64, slotID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
