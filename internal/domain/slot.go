package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

// SlotStatus represents the status of a schedule slot
type SlotStatus string

const (
	StatusAvailable  SlotStatus = "available"
	StatusBooked     SlotStatus = "booked"
	StatusBlocked    SlotStatus = "blocked"
	StatusCompleted  SlotStatus = "completed"
	StatusCancelled  SlotStatus = "cancelled"
	StatusNoShow     SlotStatus = "no_show"
	StatusInProgress SlotStatus = "in_progress"
)

// AllSlotStatuses lists every valid slot status
var AllSlotStatuses = []SlotStatus{
	StatusAvailable,
	StatusBooked,
	StatusBlocked,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusInProgress,
}

// Slot is one concrete, dated, timed unit of instructor availability or
// booking. Created either by the slot generator (status available) or
// manually by the instructor.
type Slot struct {
	ID            uuid.UUID
	InstructorID  int64
	Date          time.Time // calendar date, no time component
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        SlotStatus
	StudentID     *int64
	Location      *string
	Notes         *string
	PaymentAmount *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true if the slot occupies time on the calendar.
// Live slots on the same date must not overlap each other.
func (s *Slot) IsLive() bool {
	return s.Status == StatusAvailable ||
		s.Status == StatusBooked ||
		s.Status == StatusInProgress
}

// IsProtected returns true if the slot carries a confirmed or running
// lesson. A date holding a protected slot is immune to regeneration.
func (s *Slot) IsProtected() bool {
	return s.Status == StatusBooked || s.Status == StatusInProgress
}

// CanBeDeleted returns true if the slot may be physically removed.
// Slots carrying booking history are retained and only change status.
func (s *Slot) CanBeDeleted() bool {
	return s.Status == StatusAvailable
}

// CanBeBooked returns true if a student may reserve the slot
func (s *Slot) CanBeBooked() bool {
	return s.Status == StatusAvailable
}

// Interval returns the slot's time range
func (s *Slot) Interval() TimeInterval {
	return TimeInterval{Start: s.StartTime, End: s.EndTime}
}

// Overlaps reports whether two slots on the same date intersect in time
func (s *Slot) Overlaps(other *Slot) bool {
	if !isSameDate(s.Date, other.Date) {
		return false
	}
	return s.Interval().Overlaps(other.Interval())
}

// CanTransitionTo reports whether a manual status change is allowed
func (s *Slot) CanTransitionTo(next SlotStatus) bool {
	switch next {
	case StatusBooked:
		return s.Status == StatusAvailable
	case StatusInProgress:
		return s.Status == StatusBooked
	case StatusCompleted, StatusNoShow:
		return s.Status == StatusBooked || s.Status == StatusInProgress
	case StatusBlocked:
		return s.Status == StatusAvailable
	case StatusCancelled:
		return s.Status == StatusBooked || s.Status == StatusInProgress
	case StatusAvailable:
		return s.Status == StatusBlocked
	default:
		return false
	}
}

// SlotsFilter describes an instructor's slot listing query
type SlotsFilter struct {
	InstructorID int64       // required
	StartDate    *time.Time  // period start (optional)
	EndDate      *time.Time  // period end (optional)
	Status       *SlotStatus // status filter (optional)
}

// DateOnly truncates a timestamp to its calendar date
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isSameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
