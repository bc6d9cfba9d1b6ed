package create_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlot         = "некорректные параметры слота"
	msgSlotConflict        = "слот пересекается с существующими"
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

// Handle POST /api/v1/instructors/{instructorId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("POST /instructors/{id}/slots - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /instructors/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /instructors/{id}/slots - Invalid date=%q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slot, err := h.service.Create(r.Context(), instructorID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotConflict):
			h.logger.Warn("POST /instructors/{id}/slots - Conflict: instructor_id=%d, time=%s-%s",
				instructorID, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /instructors/{id}/slots - Invalid slot: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /instructors/{id}/slots - Failed: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instructors/{id}/slots - Created: slot_id=%s, instructor_id=%d", slot.ID, instructorID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
