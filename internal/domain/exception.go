package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidDateRange is returned when an exception's end date precedes its start date
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrMissingRecurrencePattern is returned when a recurring exception has no pattern
	ErrMissingRecurrencePattern = errors.New("recurring exception requires a pattern")
)

// ExceptionType classifies a schedule override
type ExceptionType string

const (
	ExceptionVacation ExceptionType = "vacation"
	ExceptionIllness  ExceptionType = "illness"
	ExceptionHoliday  ExceptionType = "holiday"
	ExceptionTraining ExceptionType = "training"
	ExceptionOther    ExceptionType = "other"
)

// AllExceptionTypes lists every valid exception type
var AllExceptionTypes = []ExceptionType{
	ExceptionVacation,
	ExceptionIllness,
	ExceptionHoliday,
	ExceptionTraining,
	ExceptionOther,
}

// RecurrencePattern describes how a recurring exception repeats
type RecurrencePattern string

const (
	RecurrenceYearly  RecurrencePattern = "yearly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

// Exception is a date-range override (vacation, illness, holiday) that
// suppresses generation and can cascade-block existing slots
type Exception struct {
	ID               uuid.UUID
	InstructorID     int64
	Type             ExceptionType
	StartDate        time.Time
	EndDate          time.Time
	IsRecurring      bool
	RecurringPattern *RecurrencePattern
	AffectedSlotIDs  []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the exception's date range and recurrence settings
func (e *Exception) Validate() error {
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("%w: end %s before start %s",
			ErrInvalidDateRange, e.EndDate.Format(DateFormat), e.StartDate.Format(DateFormat))
	}
	if e.IsRecurring {
		if e.RecurringPattern == nil {
			return ErrMissingRecurrencePattern
		}
		if *e.RecurringPattern != RecurrenceYearly && *e.RecurringPattern != RecurrenceMonthly {
			return fmt.Errorf("%w: unknown pattern %q", ErrMissingRecurrencePattern, *e.RecurringPattern)
		}
	}
	return nil
}

// Dates resolves the exception to a concrete, ascending set of dates.
// Recurring exceptions are expanded from the given reference date up to
// RecurrenceLookaheadDays ahead; the cap keeps open-ended yearly and
// monthly recurrence from producing an unbounded date set.
func (e *Exception) Dates(from time.Time) []time.Time {
	start := DateOnly(e.StartDate)
	end := DateOnly(e.EndDate)

	if !e.IsRecurring || e.RecurringPattern == nil {
		return enumerateDates(start, end)
	}

	horizon := DateOnly(from).AddDate(0, 0, RecurrenceLookaheadDays)

	var dates []time.Time
	occurrenceStart, occurrenceEnd := start, end

	for !occurrenceStart.After(horizon) {
		if !occurrenceEnd.Before(DateOnly(from)) {
			for _, d := range enumerateDates(occurrenceStart, occurrenceEnd) {
				if !d.Before(DateOnly(from)) && !d.After(horizon) {
					dates = append(dates, d)
				}
			}
		}

		switch *e.RecurringPattern {
		case RecurrenceYearly:
			occurrenceStart = occurrenceStart.AddDate(1, 0, 0)
			occurrenceEnd = occurrenceEnd.AddDate(1, 0, 0)
		case RecurrenceMonthly:
			occurrenceStart = occurrenceStart.AddDate(0, 1, 0)
			occurrenceEnd = occurrenceEnd.AddDate(0, 1, 0)
		default:
			return dates
		}
	}

	return dates
}

func enumerateDates(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
