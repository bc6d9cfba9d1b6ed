package delete_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/exceptions"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidExceptionID  = "некорректный ID исключения"
	msgExceptionNotFound   = "исключение не найдено"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service ExceptionService
	logger  Logger
}

func NewHandler(service ExceptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/instructors/{instructorId}/exceptions/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("DELETE /instructors/{id}/exceptions/{exceptionId} - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	exceptionID, err := uuid.Parse(vars["exceptionId"])
	if err != nil {
		h.logger.Warn("DELETE /instructors/{id}/exceptions/{exceptionId} - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	result, err := h.service.Delete(r.Context(), instructorID, exceptionID)
	if err != nil {
		switch {
		case errors.Is(err, exceptions.ErrExceptionNotFound):
			h.logger.Warn("DELETE /instructors/{id}/exceptions/{exceptionId} - Not found: exception_id=%s", exceptionID)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		case errors.Is(err, exceptions.ErrAccessDenied):
			h.logger.Warn("DELETE /instructors/{id}/exceptions/{exceptionId} - Access denied: exception_id=%s, instructor_id=%d",
				exceptionID, instructorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /instructors/{id}/exceptions/{exceptionId} - Failed: exception_id=%s, error=%v",
				exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /instructors/{id}/exceptions/{exceptionId} - Deleted: exception_id=%s, released=%d",
		exceptionID, len(result.ReleasedSlotIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
