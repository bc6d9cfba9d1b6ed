package domain

import (
	"time"

	"github.com/google/uuid"
)

// CancellationStatus represents the processing state of a cancellation request
type CancellationStatus string

const (
	CancellationPending  CancellationStatus = "pending"
	CancellationApproved CancellationStatus = "approved"
	CancellationRejected CancellationStatus = "rejected"
)

// CancellationRequest is a student's request to cancel a booked slot.
// Created by the student; processed exactly once by the instructor.
// Approved and rejected are terminal states.
type CancellationRequest struct {
	ID           uuid.UUID
	SlotID       uuid.UUID
	InstructorID int64
	StudentID    int64
	RequestDate  time.Time
	Reason       string
	Status       CancellationStatus
	ProcessedAt  *time.Time
	ProcessedBy  *int64
	AdminComment *string
	RefundAmount *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsProcessed returns true once the request has reached a terminal state
func (r *CancellationRequest) IsProcessed() bool {
	return r.Status == CancellationApproved || r.Status == CancellationRejected
}

// CanBeProcessed returns true while the request is still pending
func (r *CancellationRequest) CanBeProcessed() bool {
	return r.Status == CancellationPending
}
