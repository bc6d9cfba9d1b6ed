package models

import (
	"errors"
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе слота
	ErrInvalidStatus = errors.New("invalid slot status")
)

// Request модели

// ListSlotsRequest запрос на получение слотов инструктора за период
type ListSlotsRequest struct {
	InstructorID int64      `json:"instructorId"`
	StartDate    *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate      *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status       *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// CreateSlotRequest запрос на ручное создание слота
type CreateSlotRequest struct {
	Date          time.Time `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Status        *string   `json:"status,omitempty"` // Явный статус слота (опционально)
	StudentID     *int64    `json:"studentId,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	PaymentAmount *float64  `json:"paymentAmount,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса слота
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	StudentID *int64 `json:"studentId,omitempty"`
}

// Response модели

// SlotResponse слот расписания
type SlotResponse struct {
	ID            string    `json:"id"`
	InstructorID  int64     `json:"instructorId"`
	Date          string    `json:"date"` // YYYY-MM-DD
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Status        string    `json:"status"`
	StudentID     *int64    `json:"studentId,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	PaymentAmount *float64  `json:"paymentAmount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// ToDomainSlotStatus конвертирует строку в доменный статус слота
func ToDomainSlotStatus(s string) (domain.SlotStatus, error) {
	for _, status := range domain.AllSlotStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotsFilter, error) {
	filter := domain.SlotsFilter{
		InstructorID: r.InstructorID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainSlotStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// FromDomainSlot конвертирует доменный слот в response
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:            s.ID.String(),
		InstructorID:  s.InstructorID,
		Date:          s.Date.Format(domain.DateFormat),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		Status:        string(s.Status),
		StudentID:     s.StudentID,
		Location:      s.Location,
		Notes:         s.Notes,
		PaymentAmount: s.PaymentAmount,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список слотов в response
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
