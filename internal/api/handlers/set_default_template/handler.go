package set_default_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidTemplateID   = "некорректный ID шаблона"
	msgTemplateNotFound    = "шаблон не найден"
	msgForbidden           = "доступ запрещен"
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

// Handle PATCH /api/v1/instructors/{instructorId}/templates/{templateId}/default
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("PATCH /instructors/{id}/templates/{templateId}/default - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	templateID, err := uuid.Parse(vars["templateId"])
	if err != nil {
		h.logger.Warn("PATCH /instructors/{id}/templates/{templateId}/default - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	err = h.service.SetDefaultTemplate(r.Context(), instructorID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTemplateNotFound):
			h.logger.Warn("PATCH /instructors/{id}/templates/{templateId}/default - Not found: template_id=%s",
				templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PATCH /instructors/{id}/templates/{templateId}/default - Access denied: template_id=%s, instructor_id=%d",
				templateID, instructorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /instructors/{id}/templates/{templateId}/default - Failed: template_id=%s, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /instructors/{id}/templates/{templateId}/default - Set default: template_id=%s, instructor_id=%d",
		templateID, instructorID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
