package get_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots/models"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus       = "некорректный статус слота"
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

// Handle GET /api/v1/instructors/{instructorId}/slots
// Query параметры: start_date, end_date (YYYY-MM-DD), status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("GET /instructors/{id}/slots - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	req := &models.ListSlotsRequest{InstructorID: instructorID}

	query := r.URL.Query()
	if raw := query.Get("start_date"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /instructors/{id}/slots - Invalid start_date=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}
	if raw := query.Get("end_date"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /instructors/{id}/slots - Invalid end_date=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/slots - Invalid status: instructor_id=%d, status=%v",
				instructorID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /instructors/{id}/slots - Failed: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
