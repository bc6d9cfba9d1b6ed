package apply_exception

import (
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	applyException "github.com/m04kA/DS-ScheduleService/internal/usecase/apply_exception"
)

// ApplyExceptionRequest HTTP request model
type ApplyExceptionRequest struct {
	Type             string  `json:"type"`      // vacation | illness | holiday | training | other
	StartDate        string  `json:"startDate"` // YYYY-MM-DD
	EndDate          string  `json:"endDate"`   // YYYY-MM-DD
	IsRecurring      bool    `json:"isRecurring"`
	RecurringPattern *string `json:"recurringPattern,omitempty"` // yearly | monthly
}

// ToUseCaseRequest конвертирует HTTP request в модель use case (с парсингом дат)
func (r *ApplyExceptionRequest) ToUseCaseRequest(instructorID int64) (*applyException.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &applyException.Request{
		InstructorID:     instructorID,
		Type:             r.Type,
		StartDate:        startDate,
		EndDate:          endDate,
		IsRecurring:      r.IsRecurring,
		RecurringPattern: r.RecurringPattern,
	}, nil
}
