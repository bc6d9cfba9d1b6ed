package delete_template

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

// Handle DELETE /api/v1/instructors/{instructorId}/templates/{templateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("DELETE /instructors/{id}/templates/{templateId} - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	templateID, err := uuid.Parse(vars["templateId"])
	if err != nil {
		h.logger.Warn("DELETE /instructors/{id}/templates/{templateId} - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	err = h.service.DeleteTemplate(r.Context(), instructorID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTemplateNotFound):
			h.logger.Warn("DELETE /instructors/{id}/templates/{templateId} - Not found: template_id=%s", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /instructors/{id}/templates/{templateId} - Access denied: template_id=%s, instructor_id=%d",
				templateID, instructorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /instructors/{id}/templates/{templateId} - Failed: template_id=%s, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /instructors/{id}/templates/{templateId} - Deleted: template_id=%s, instructor_id=%d",
		templateID, instructorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
