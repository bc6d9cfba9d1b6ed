package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

var (
	// ErrInvalidInterval is returned when an interval's end does not follow
	// its start, or an endpoint falls outside the operating window
	ErrInvalidInterval = errors.New("invalid time interval")

	// ErrIntervalsOverlap is returned when two intervals on the same day intersect
	ErrIntervalsOverlap = errors.New("time intervals overlap")
)

// TimeInterval is a half-open time range [Start, End) within one day
type TimeInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// OperatingWindow returns the permitted interval for working hours
func OperatingWindow() TimeInterval {
	return TimeInterval{Start: OpeningTime, End: ClosingTime}
}

// Overlaps reports whether i and other intersect. Half-open semantics:
// intervals that merely touch at an endpoint do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Contains reports whether other lies fully inside i
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.IsBefore(i.Start) && !other.End.IsAfter(i.End)
}

// DurationMinutes returns the interval length in minutes
func (i TimeInterval) DurationMinutes() (int, error) {
	start, err := i.Start.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := i.End.Minutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// Validate checks the interval against the given bounds.
// The start must be strictly before the end and both endpoints must fall
// inside bounds.
func (i TimeInterval) Validate(bounds TimeInterval) error {
	if err := i.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	if err := i.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}
	if !i.Start.IsBefore(i.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidInterval, i.Start, i.End)
	}
	if i.Start.IsBefore(bounds.Start) || i.End.IsAfter(bounds.End) {
		return fmt.Errorf("%w: %s-%s is outside operating window %s-%s",
			ErrInvalidInterval, i.Start, i.End, bounds.Start, bounds.End)
	}
	return nil
}
