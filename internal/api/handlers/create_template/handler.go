package create_template

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
	msgInvalidTemplate     = "некорректные параметры шаблона"
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

// Handle POST /api/v1/instructors/{instructorId}/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("POST /instructors/{id}/templates - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	var req models.CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /instructors/{id}/templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	template, err := h.service.CreateTemplate(r.Context(), instructorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /instructors/{id}/templates - Invalid template: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)

		default:
			h.logger.Error("POST /instructors/{id}/templates - Failed: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instructors/{id}/templates - Created: template_id=%s, instructor_id=%d",
		template.ID, instructorID)
	handlers.RespondJSON(w, http.StatusCreated, template)
}
