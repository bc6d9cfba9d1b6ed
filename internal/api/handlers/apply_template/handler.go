package apply_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/schedule"
	reconcileSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/reconcile_schedule"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidTemplateID   = "некорректный ID шаблона"
	msgTemplateNotFound    = "шаблон не найден"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service    ScheduleService
	reconciler ScheduleReconciler
	logger     Logger
}

func NewHandler(service ScheduleService, reconciler ScheduleReconciler, logger Logger) *Handler {
	return &Handler{
		service:    service,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Handle POST /api/v1/instructors/{instructorId}/templates/{templateId}/apply
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("POST /instructors/{id}/templates/{templateId}/apply - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	templateID, err := uuid.Parse(vars["templateId"])
	if err != nil {
		h.logger.Warn("POST /instructors/{id}/templates/{templateId}/apply - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	week, err := h.service.ApplyTemplate(r.Context(), instructorID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTemplateNotFound):
			h.logger.Warn("POST /instructors/{id}/templates/{templateId}/apply - Not found: template_id=%s", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /instructors/{id}/templates/{templateId}/apply - Access denied: template_id=%s, instructor_id=%d",
				templateID, instructorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /instructors/{id}/templates/{templateId}/apply - Failed: template_id=%s, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Новая неделя сразу превращается в слоты: применение шаблона без
	// перегенерации оставило бы расписание в прошлой конфигурации
	reconcile, err := h.reconciler.Execute(r.Context(), &reconcileSchedule.Request{InstructorID: instructorID})
	if err != nil {
		h.logger.Error("POST /instructors/{id}/templates/{templateId}/apply - Reconcile failed: template_id=%s, instructor_id=%d, error=%v",
			templateID, instructorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /instructors/{id}/templates/{templateId}/apply - Applied: template_id=%s, instructor_id=%d, generated=%d",
		templateID, instructorID, reconcile.GeneratedCount)
	handlers.RespondJSON(w, http.StatusOK, &ApplyTemplateResponse{Week: week, Reconcile: reconcile})
}
