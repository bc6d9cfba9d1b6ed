package import_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	transferSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/transfer_schedule"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidPayload      = "некорректный снимок расписания"
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

// Handle POST /api/v1/instructors/{instructorId}/schedule/import
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("POST /instructors/{id}/schedule/import - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	var payload transferSchedule.SchedulePayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("POST /instructors/{id}/schedule/import - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Import(r.Context(), instructorID, &payload)
	if err != nil {
		switch {
		case errors.Is(err, transferSchedule.ErrInvalidPayload), errors.Is(err, transferSchedule.ErrInvalidInput):
			h.logger.Warn("POST /instructors/{id}/schedule/import - Invalid payload: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		default:
			h.logger.Error("POST /instructors/{id}/schedule/import - Failed: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instructors/{id}/schedule/import - Imported: instructor_id=%d, slots=%d, templates=%d, exceptions=%d",
		instructorID, result.SlotsImported, result.TemplatesImported, result.ExceptionsImported)
	handlers.RespondJSON(w, http.StatusOK, result)
}
