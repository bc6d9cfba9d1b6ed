package apply_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	applyException "github.com/m04kA/DS-ScheduleService/internal/usecase/apply_exception"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidException    = "некорректные параметры исключения"
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

// Handle POST /api/v1/instructors/{instructorId}/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("POST /instructors/{id}/exceptions - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	var req ApplyExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /instructors/{id}/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(instructorID)
	if err != nil {
		h.logger.Warn("POST /instructors/{id}/exceptions - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, applyException.ErrInvalidInput):
			h.logger.Warn("POST /instructors/{id}/exceptions - Invalid exception: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidException)

		default:
			h.logger.Error("POST /instructors/{id}/exceptions - Failed: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instructors/{id}/exceptions - Applied: exception_id=%s, instructor_id=%d, blocked=%d, warned=%d",
		result.ExceptionID, instructorID, len(result.BlockedSlotIDs), len(result.WarnedBookedSlotIDs))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
