package reconcile_schedule

import (
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	reconcileSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/reconcile_schedule"
)

// ReconcileRequest HTTP request model.
// Окно опционально: без него регенерируется стандартный горизонт от
// сегодняшнего дня.
type ReconcileRequest struct {
	StartDate *string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"endDate,omitempty"`   // YYYY-MM-DD
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *ReconcileRequest) ToUseCaseRequest(instructorID int64) (*reconcileSchedule.Request, error) {
	req := &reconcileSchedule.Request{InstructorID: instructorID}

	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}
	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	return req, nil
}
