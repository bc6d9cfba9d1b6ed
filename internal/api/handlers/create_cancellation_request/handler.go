package create_cancellation_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/api/middleware"
	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations"
	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations/models"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры запроса"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotBooked      = "слот не забронирован"
	msgForbidden          = "отменить можно только своё занятие"
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

// Handle POST /api/v1/cancellation-requests
// ID студента берётся из аутентификации, не из тела запроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /cancellation-requests - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cancellation-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRequest(r.Context(), studentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cancellations.ErrSlotNotFound):
			h.logger.Warn("POST /cancellation-requests - Slot not found: slot_id=%s, student_id=%d",
				req.SlotID, studentID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, cancellations.ErrSlotNotBooked):
			h.logger.Warn("POST /cancellation-requests - Slot not booked: slot_id=%s", req.SlotID)
			handlers.RespondConflict(w, msgSlotNotBooked)

		case errors.Is(err, cancellations.ErrAccessDenied):
			h.logger.Warn("POST /cancellation-requests - Access denied: slot_id=%s, student_id=%d",
				req.SlotID, studentID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancellations.ErrInvalidInput):
			h.logger.Warn("POST /cancellation-requests - Invalid request: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /cancellation-requests - Failed: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cancellation-requests - Created: request_id=%s, student_id=%d", result.ID, studentID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
