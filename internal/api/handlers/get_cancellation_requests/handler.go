package get_cancellation_requests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations"
	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations/models"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidStatus       = "некорректный статус запроса"
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

// Handle GET /api/v1/instructors/{instructorId}/cancellation-requests
// Query параметры: status (pending | approved | rejected)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("GET /instructors/{id}/cancellation-requests - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	req := &models.ListRequest{InstructorID: instructorID}
	if raw := r.URL.Query().Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, cancellations.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/cancellation-requests - Invalid status: instructor_id=%d, status=%v",
				instructorID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /instructors/{id}/cancellation-requests - Failed: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
