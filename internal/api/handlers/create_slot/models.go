package create_slot

import (
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	Date          string   `json:"date"` // YYYY-MM-DD
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Status        *string  `json:"status,omitempty"`
	StudentID     *int64   `json:"studentId,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	PaymentAmount *float64 `json:"paymentAmount,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса (с парсингом даты)
func (r *CreateSlotRequest) ToServiceRequest() (*models.CreateSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateSlotRequest{
		Date:          date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
		StudentID:     r.StudentID,
		Location:      r.Location,
		Notes:         r.Notes,
		PaymentAmount: r.PaymentAmount,
	}, nil
}
