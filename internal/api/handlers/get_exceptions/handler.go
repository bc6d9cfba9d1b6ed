package get_exceptions

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
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

// Handle GET /api/v1/instructors/{instructorId}/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("GET /instructors/{id}/exceptions - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	result, err := h.service.List(r.Context(), instructorID)
	if err != nil {
		h.logger.Error("GET /instructors/{id}/exceptions - Failed: instructor_id=%d, error=%v", instructorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
