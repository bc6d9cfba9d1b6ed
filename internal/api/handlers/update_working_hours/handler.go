package update_working_hours

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
	msgInvalidDayConfig    = "некорректная конфигурация дня"
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

// Handle PUT /api/v1/instructors/{instructorId}/working-hours/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("PUT /instructors/{id}/working-hours/{weekday} - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}
	weekday := vars["weekday"]

	var req models.UpdateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /instructors/{id}/working-hours/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	week, err := h.service.UpdateDay(r.Context(), instructorID, weekday, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /instructors/{id}/working-hours/{weekday} - Invalid config: instructor_id=%d, weekday=%s, error=%v",
				instructorID, weekday, err)
			handlers.RespondBadRequest(w, msgInvalidDayConfig)

		default:
			h.logger.Error("PUT /instructors/{id}/working-hours/{weekday} - Failed: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /instructors/{id}/working-hours/{weekday} - Updated: instructor_id=%d, weekday=%s",
		instructorID, weekday)
	handlers.RespondJSON(w, http.StatusOK, week)
}
