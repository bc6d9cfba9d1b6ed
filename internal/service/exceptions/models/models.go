package models

import (
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/pkg/ptr"
)

// Response модели

// ExceptionResponse исключение расписания
type ExceptionResponse struct {
	ID               string    `json:"id"`
	InstructorID     int64     `json:"instructorId"`
	Type             string    `json:"type"`
	StartDate        string    `json:"startDate"` // YYYY-MM-DD
	EndDate          string    `json:"endDate"`   // YYYY-MM-DD
	IsRecurring      bool      `json:"isRecurring"`
	RecurringPattern *string   `json:"recurringPattern,omitempty"`
	AffectedSlotIDs  []string  `json:"affectedSlotIds"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ExceptionListResponse список исключений инструктора
type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
}

// DeleteResponse результат удаления исключения
type DeleteResponse struct {
	ExceptionID     string   `json:"exceptionId"`
	ReleasedSlotIDs []string `json:"releasedSlotIds"`
}

// FromDomainException конвертирует доменное исключение в response
func FromDomainException(e *domain.Exception) ExceptionResponse {
	resp := ExceptionResponse{
		ID:              e.ID.String(),
		InstructorID:    e.InstructorID,
		Type:            string(e.Type),
		StartDate:       e.StartDate.Format(domain.DateFormat),
		EndDate:         e.EndDate.Format(domain.DateFormat),
		IsRecurring:     e.IsRecurring,
		AffectedSlotIDs: make([]string, 0, len(e.AffectedSlotIDs)),
	}
	if e.RecurringPattern != nil {
		resp.RecurringPattern = ptr.Ptr(string(*e.RecurringPattern))
	}
	for _, id := range e.AffectedSlotIDs {
		resp.AffectedSlotIDs = append(resp.AffectedSlotIDs, id.String())
	}
	resp.CreatedAt = e.CreatedAt
	resp.UpdatedAt = e.UpdatedAt
	return resp
}

// FromDomainExceptionList конвертирует список исключений в response
func FromDomainExceptionList(exceptions []*domain.Exception) *ExceptionListResponse {
	resp := &ExceptionListResponse{Exceptions: make([]ExceptionResponse, 0, len(exceptions))}
	for _, e := range exceptions {
		resp.Exceptions = append(resp.Exceptions, FromDomainException(e))
	}
	return resp
}
