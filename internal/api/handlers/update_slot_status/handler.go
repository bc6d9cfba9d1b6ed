package update_slot_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots/models"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidSlotID       = "некорректный ID слота"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStatus       = "некорректный статус слота"
	msgStudentRequired     = "для бронирования требуется ID студента"
	msgInvalidTransition   = "недопустимая смена статуса"
	msgSlotNotFound        = "слот не найден"
	msgForbidden           = "доступ запрещен"
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

// Handle PATCH /api/v1/instructors/{instructorId}/slots/{slotId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("PATCH /instructors/{id}/slots/{slotId}/status - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	slotID, err := uuid.Parse(vars["slotId"])
	if err != nil {
		h.logger.Warn("PATCH /instructors/{id}/slots/{slotId}/status - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /instructors/{id}/slots/{slotId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.UpdateStatus(r.Context(), instructorID, slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /instructors/{id}/slots/{slotId}/status - Not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("PATCH /instructors/{id}/slots/{slotId}/status - Access denied: slot_id=%s, instructor_id=%d",
				slotID, instructorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidTransition):
			h.logger.Warn("PATCH /instructors/{id}/slots/{slotId}/status - Invalid transition: slot_id=%s, status=%s",
				slotID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, slots.ErrStudentRequired):
			h.logger.Warn("PATCH /instructors/{id}/slots/{slotId}/status - Student required: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgStudentRequired)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /instructors/{id}/slots/{slotId}/status - Invalid status=%q: slot_id=%s",
				req.Status, slotID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /instructors/{id}/slots/{slotId}/status - Failed: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /instructors/{id}/slots/{slotId}/status - Updated: slot_id=%s, status=%s", slotID, slot.Status)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
