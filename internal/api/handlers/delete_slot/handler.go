package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidSlotID       = "некорректный ID слота"
	msgSlotNotFound        = "слот не найден"
	msgForbidden           = "доступ запрещен"
	msgSlotNotDeletable    = "удалить можно только свободный слот"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/instructors/{instructorId}/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("DELETE /instructors/{id}/slots/{slotId} - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	slotID, err := uuid.Parse(vars["slotId"])
	if err != nil {
		h.logger.Warn("DELETE /instructors/{id}/slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	err = h.service.Delete(r.Context(), instructorID, slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /instructors/{id}/slots/{slotId} - Not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /instructors/{id}/slots/{slotId} - Access denied: slot_id=%s, instructor_id=%d",
				slotID, instructorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrSlotNotDeletable):
			h.logger.Warn("DELETE /instructors/{id}/slots/{slotId} - Not deletable: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgSlotNotDeletable)

		default:
			h.logger.Error("DELETE /instructors/{id}/slots/{slotId} - Failed: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /instructors/{id}/slots/{slotId} - Deleted: slot_id=%s, instructor_id=%d", slotID, instructorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
