package reconcile_schedule

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
	reconcileSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/reconcile_schedule"
)

const (
	msgInvalidInstructorID  = "некорректный ID инструктора"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange     = "некорректное окно регенерации"
	msgWorkingHoursNotFound = "рабочие часы инструктора не настроены"
)

type Handler struct {
	useCase ReconcileScheduleUseCase
	logger  Logger
}

func NewHandler(useCase ReconcileScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/instructors/{instructorId}/schedule/reconcile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil || instructorID <= 0 {
		h.logger.Warn("POST /instructors/{id}/schedule/reconcile - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	// Тело опционально: пустой запрос регенерирует стандартное окно
	var req ReconcileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /instructors/{id}/schedule/reconcile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(instructorID)
	if err != nil {
		h.logger.Warn("POST /instructors/{id}/schedule/reconcile - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reconcileSchedule.ErrWorkingHoursNotFound):
			h.logger.Warn("POST /instructors/{id}/schedule/reconcile - Working hours not found: instructor_id=%d",
				instructorID)
			handlers.RespondNotFound(w, msgWorkingHoursNotFound)

		case errors.Is(err, reconcileSchedule.ErrInvalidDateRange), errors.Is(err, reconcileSchedule.ErrInvalidInput):
			h.logger.Warn("POST /instructors/{id}/schedule/reconcile - Invalid range: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("POST /instructors/{id}/schedule/reconcile - Failed: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instructors/{id}/schedule/reconcile - Done: instructor_id=%d, generated=%d, skipped=%d",
		instructorID, result.GeneratedCount, len(result.SkippedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
