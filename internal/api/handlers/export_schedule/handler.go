package export_schedule

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
	useCase TransferScheduleUseCase
	logger  Logger
}

func NewHandler(useCase TransferScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/schedule/export
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("GET /instructors/{id}/schedule/export - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	payload, err := h.useCase.Export(r.Context(), instructorID)
	if err != nil {
		h.logger.Error("GET /instructors/{id}/schedule/export - Failed: instructor_id=%d, error=%v", instructorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /instructors/{id}/schedule/export - Exported: instructor_id=%d, slots=%d",
		instructorID, len(payload.Slots))
	handlers.RespondJSON(w, http.StatusOK, payload)
}
