package add_interval

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/schedule"
	"github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInterval     = "некорректный интервал"
	msgIntervalConflict    = "интервал пересекается с уже настроенными"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/instructors/{instructorId}/working-hours/{weekday}/intervals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("POST /instructors/{id}/working-hours/{weekday}/intervals - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}
	weekday := vars["weekday"]

	var req models.AddIntervalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /instructors/{id}/working-hours/{weekday}/intervals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	week, err := h.service.AddInterval(r.Context(), instructorID, weekday, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrIntervalConflict):
			h.logger.Warn("POST /instructors/{id}/working-hours/{weekday}/intervals - Conflict: instructor_id=%d, weekday=%s",
				instructorID, weekday)
			handlers.RespondConflict(w, msgIntervalConflict)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /instructors/{id}/working-hours/{weekday}/intervals - Invalid interval: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /instructors/{id}/working-hours/{weekday}/intervals - Failed: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instructors/{id}/working-hours/{weekday}/intervals - Added: instructor_id=%d, weekday=%s, interval=%s-%s",
		instructorID, weekday, req.Start, req.End)
	handlers.RespondJSON(w, http.StatusOK, week)
}
