package process_cancellation_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations"
	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations/models"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidRequestID    = "некорректный ID запроса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidAction       = "некорректное действие, ожидается approve или reject"
	msgCommentRequired     = "для отклонения требуется комментарий"
	msgRequestNotFound     = "запрос на отмену не найден"
	msgAlreadyProcessed    = "запрос уже обработан"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service CancellationService
	logger  Logger
}

func NewHandler(service CancellationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/instructors/{instructorId}/cancellation-requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("PATCH /instructors/{id}/cancellation-requests/{requestId} - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	requestID, err := uuid.Parse(vars["requestId"])
	if err != nil {
		h.logger.Warn("PATCH /instructors/{id}/cancellation-requests/{requestId} - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req models.ProcessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /instructors/{id}/cancellation-requests/{requestId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Process(r.Context(), instructorID, requestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cancellations.ErrRequestNotFound):
			h.logger.Warn("PATCH /instructors/{id}/cancellation-requests/{requestId} - Not found: request_id=%s",
				requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, cancellations.ErrAccessDenied):
			h.logger.Warn("PATCH /instructors/{id}/cancellation-requests/{requestId} - Access denied: request_id=%s, instructor_id=%d",
				requestID, instructorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancellations.ErrAlreadyProcessed):
			h.logger.Warn("PATCH /instructors/{id}/cancellation-requests/{requestId} - Already processed: request_id=%s",
				requestID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, cancellations.ErrCommentRequired):
			h.logger.Warn("PATCH /instructors/{id}/cancellation-requests/{requestId} - Comment required: request_id=%s",
				requestID)
			handlers.RespondBadRequest(w, msgCommentRequired)

		case errors.Is(err, cancellations.ErrInvalidInput):
			h.logger.Warn("PATCH /instructors/{id}/cancellation-requests/{requestId} - Invalid action=%q: request_id=%s",
				req.Action, requestID)
			handlers.RespondBadRequest(w, msgInvalidAction)

		default:
			h.logger.Error("PATCH /instructors/{id}/cancellation-requests/{requestId} - Failed: request_id=%s, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /instructors/{id}/cancellation-requests/{requestId} - Processed: request_id=%s, status=%s",
		requestID, result.Request.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
