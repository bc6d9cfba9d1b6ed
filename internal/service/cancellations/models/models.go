package models

import (
	"errors"
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе запроса
	ErrInvalidStatus = errors.New("invalid cancellation status")

	// ErrInvalidAction возвращается при некорректном действии обработки
	ErrInvalidAction = errors.New("invalid process action")
)

// Действия обработки запроса на отмену
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Request модели

// CreateRequest запрос студента на отмену забронированного слота
type CreateRequest struct {
	SlotID string `json:"slotId"`
	Reason string `json:"reason"`
}

// ListRequest запрос на получение запросов на отмену инструктора
type ListRequest struct {
	InstructorID int64   `json:"instructorId"`
	Status       *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ProcessRequest решение инструктора по запросу на отмену.
// ReopenSlot переопределяет политику возврата слота в продажу из
// конфигурации; nil означает "по политике сервиса".
type ProcessRequest struct {
	Action       string   `json:"action"` // approve | reject
	AdminComment *string  `json:"adminComment,omitempty"`
	RefundAmount *float64 `json:"refundAmount,omitempty"`
	ReopenSlot   *bool    `json:"reopenSlot,omitempty"`
}

// Response модели

// CancellationResponse запрос на отмену
type CancellationResponse struct {
	ID           string     `json:"id"`
	SlotID       string     `json:"slotId"`
	InstructorID int64      `json:"instructorId"`
	StudentID    int64      `json:"studentId"`
	RequestDate  time.Time  `json:"requestDate"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
	ProcessedBy  *int64     `json:"processedBy,omitempty"`
	AdminComment *string    `json:"adminComment,omitempty"`
	RefundAmount *float64   `json:"refundAmount,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CancellationListResponse список запросов на отмену
type CancellationListResponse struct {
	Requests []CancellationResponse `json:"requests"`
}

// ProcessResponse результат обработки запроса на отмену
type ProcessResponse struct {
	Request        CancellationResponse `json:"request"`
	ReopenedSlotID *string              `json:"reopenedSlotId,omitempty"`
}

// ToDomainCancellationStatus конвертирует строку в доменный статус запроса
func ToDomainCancellationStatus(s string) (domain.CancellationStatus, error) {
	switch domain.CancellationStatus(s) {
	case domain.CancellationPending, domain.CancellationApproved, domain.CancellationRejected:
		return domain.CancellationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainCancellation конвертирует доменный запрос в response
func FromDomainCancellation(r *domain.CancellationRequest) CancellationResponse {
	return CancellationResponse{
		ID:           r.ID.String(),
		SlotID:       r.SlotID.String(),
		InstructorID: r.InstructorID,
		StudentID:    r.StudentID,
		RequestDate:  r.RequestDate,
		Reason:       r.Reason,
		Status:       string(r.Status),
		ProcessedAt:  r.ProcessedAt,
		ProcessedBy:  r.ProcessedBy,
		AdminComment: r.AdminComment,
		RefundAmount: r.RefundAmount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainCancellationList конвертирует список запросов в response
func FromDomainCancellationList(requests []*domain.CancellationRequest) *CancellationListResponse {
	resp := &CancellationListResponse{Requests: make([]CancellationResponse, 0, len(requests))}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, FromDomainCancellation(r))
	}
	return resp
}
