package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleTemplate is a named, reusable snapshot of a weekly availability.
// At most one template per instructor is the default; that rule is
// enforced when a new default is set, not by the model itself.
type ScheduleTemplate struct {
	ID           uuid.UUID
	InstructorID int64
	Name         string
	Week         WeeklyAvailability
	IsDefault    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
