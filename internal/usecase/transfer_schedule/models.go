package transfer_schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

// SlotPayload слот в экспортном снимке
type SlotPayload struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"` // YYYY-MM-DD
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Status        string   `json:"status"`
	StudentID     *int64   `json:"studentId,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	PaymentAmount *float64 `json:"paymentAmount,omitempty"`
}

// TemplatePayload шаблон расписания в экспортном снимке
type TemplatePayload struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Week      domain.WeeklyAvailability `json:"week"`
	IsDefault bool                      `json:"isDefault"`
}

// ExceptionPayload исключение в экспортном снимке
type ExceptionPayload struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	IsRecurring      bool    `json:"isRecurring"`
	RecurringPattern *string `json:"recurringPattern,omitempty"`
}

// SchedulePayload полный снимок расписания инструктора.
// Экспорт сериализует его в JSON; импорт принимает ту же форму и
// заменяет состояние целиком, без слияния.
type SchedulePayload struct {
	Slots        []SlotPayload             `json:"slots"`
	WorkingHours domain.WeeklyAvailability `json:"workingHours"`
	Templates    []TemplatePayload         `json:"templates"`
	Exceptions   []ExceptionPayload        `json:"exceptions"`
	ExportDate   string                    `json:"exportDate"` // ISO-8601
}

// ImportResponse результат импорта
type ImportResponse struct {
	SlotsImported      int `json:"slotsImported"`
	TemplatesImported  int `json:"templatesImported"`
	ExceptionsImported int `json:"exceptionsImported"`
}

func slotToPayload(s *domain.Slot) SlotPayload {
	return SlotPayload{
		ID:            s.ID.String(),
		Date:          s.Date.Format(domain.DateFormat),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		Status:        string(s.Status),
		StudentID:     s.StudentID,
		Location:      s.Location,
		Notes:         s.Notes,
		PaymentAmount: s.PaymentAmount,
	}
}

func slotFromPayload(instructorID int64, p SlotPayload) (*domain.Slot, error) {
	date, err := time.Parse(domain.DateFormat, p.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: slot date %q: %v", ErrInvalidPayload, p.Date, err)
	}

	s := &domain.Slot{
		InstructorID:  instructorID,
		Date:          date,
		StartTime:     types.TimeString(p.StartTime),
		EndTime:       types.TimeString(p.EndTime),
		Status:        domain.SlotStatus(p.Status),
		StudentID:     p.StudentID,
		Location:      p.Location,
		Notes:         p.Notes,
		PaymentAmount: p.PaymentAmount,
	}

	// Идентификатор из снимка сохраняется, если он корректен; иначе
	// репозиторий выдаст новый при вставке
	if id, err := uuid.Parse(p.ID); err == nil {
		s.ID = id
	}

	if err := s.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: slot start time: %v", ErrInvalidPayload, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: slot end time: %v", ErrInvalidPayload, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return nil, fmt.Errorf("%w: slot %s-%s has non-positive length", ErrInvalidPayload, s.StartTime, s.EndTime)
	}
	if !validSlotStatus(s.Status) {
		return nil, fmt.Errorf("%w: unknown slot status %q", ErrInvalidPayload, p.Status)
	}

	return s, nil
}

func validSlotStatus(status domain.SlotStatus) bool {
	for _, s := range domain.AllSlotStatuses {
		if s == status {
			return true
		}
	}
	return false
}
