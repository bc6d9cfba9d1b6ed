package confirm_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	applyException "github.com/m04kA/DS-ScheduleService/internal/usecase/apply_exception"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidExceptionID  = "некорректный ID исключения"
	msgExceptionNotFound   = "исключение не найдено"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	useCase ApplyExceptionUseCase
	logger  Logger
}

func NewHandler(useCase ApplyExceptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/instructors/{instructorId}/exceptions/{exceptionId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("POST /instructors/{id}/exceptions/{exceptionId}/confirm - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	exceptionID, err := uuid.Parse(vars["exceptionId"])
	if err != nil {
		h.logger.Warn("POST /instructors/{id}/exceptions/{exceptionId}/confirm - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	result, err := h.useCase.Confirm(r.Context(), exceptionID, &applyException.ConfirmRequest{InstructorID: instructorID})
	if err != nil {
		switch {
		case errors.Is(err, applyException.ErrExceptionNotFound):
			h.logger.Warn("POST /instructors/{id}/exceptions/{exceptionId}/confirm - Not found: exception_id=%s",
				exceptionID)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		case errors.Is(err, applyException.ErrAccessDenied):
			h.logger.Warn("POST /instructors/{id}/exceptions/{exceptionId}/confirm - Access denied: exception_id=%s, instructor_id=%d",
				exceptionID, instructorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /instructors/{id}/exceptions/{exceptionId}/confirm - Failed: exception_id=%s, error=%v",
				exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instructors/{id}/exceptions/{exceptionId}/confirm - Cancelled %d slots: exception_id=%s",
		len(result.CancelledSlotIDs), exceptionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
