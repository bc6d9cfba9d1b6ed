package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrInvalidDuration is returned when a slot or break duration is out of bounds
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrUnknownWeekday is returned when a weekday key is not one of monday..sunday
	ErrUnknownWeekday = errors.New("unknown weekday")
)

// Weekday is one of the seven canonical weekday keys. The keys are a fixed,
// closed set; display labels may be localized but these values never vary.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists the weekday keys in calendar order
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday converts a string into a Weekday key
func ParseWeekday(s string) (Weekday, error) {
	for _, day := range AllWeekdays {
		if string(day) == s {
			return day, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}

// WeekdayOf returns the weekday key for a calendar date
func WeekdayOf(date time.Time) Weekday {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// DayAvailability is one weekday's recurring configuration: whether the
// instructor works that day, during which intervals, and how slots are cut.
// Days are never deleted, only disabled.
type DayAvailability struct {
	Enabled              bool           `json:"enabled"`
	Intervals            []TimeInterval `json:"intervals"`
	SlotDurationMinutes  int            `json:"slotDurationMinutes"`
	BreakDurationMinutes int            `json:"breakDurationMinutes"`
}

// Normalize sorts the day's intervals start-ascending
func (d *DayAvailability) Normalize() {
	sort.Slice(d.Intervals, func(i, j int) bool {
		return d.Intervals[i].Start.IsBefore(d.Intervals[j].Start)
	})
}

// Validate checks durations, every interval against the operating window,
// and pairwise non-overlap among the day's intervals
func (d DayAvailability) Validate() error {
	if d.SlotDurationMinutes < MinSlotDurationMinutes || d.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration %d minutes, allowed %d-%d",
			ErrInvalidDuration, d.SlotDurationMinutes, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if d.BreakDurationMinutes < MinBreakDurationMinutes || d.BreakDurationMinutes > MaxBreakDurationMinutes {
		return fmt.Errorf("%w: break duration %d minutes, allowed %d-%d",
			ErrInvalidDuration, d.BreakDurationMinutes, MinBreakDurationMinutes, MaxBreakDurationMinutes)
	}

	bounds := OperatingWindow()
	for _, interval := range d.Intervals {
		if err := interval.Validate(bounds); err != nil {
			return err
		}
	}

	for i := 0; i < len(d.Intervals); i++ {
		for j := i + 1; j < len(d.Intervals); j++ {
			if d.Intervals[i].Overlaps(d.Intervals[j]) {
				return fmt.Errorf("%w: %s-%s and %s-%s",
					ErrIntervalsOverlap,
					d.Intervals[i].Start, d.Intervals[i].End,
					d.Intervals[j].Start, d.Intervals[j].End)
			}
		}
	}

	return nil
}

// CanAddInterval checks that a new interval is valid and does not overlap
// any of the day's existing intervals
func (d DayAvailability) CanAddInterval(interval TimeInterval) error {
	if err := interval.Validate(OperatingWindow()); err != nil {
		return err
	}
	for _, existing := range d.Intervals {
		if existing.Overlaps(interval) {
			return fmt.Errorf("%w: %s-%s and %s-%s",
				ErrIntervalsOverlap,
				existing.Start, existing.End,
				interval.Start, interval.End)
		}
	}
	return nil
}

// DefaultDayAvailability returns the configuration a weekday receives at
// account setup
func DefaultDayAvailability(enabled bool) DayAvailability {
	day := DayAvailability{
		Enabled:              enabled,
		SlotDurationMinutes:  DefaultSlotDurationMinutes,
		BreakDurationMinutes: DefaultBreakDurationMinutes,
	}
	if enabled {
		day.Intervals = []TimeInterval{{Start: "09:00", End: "17:00"}}
	}
	return day
}

// WeeklyAvailability maps the seven weekday keys to their configuration.
// This is the authoritative template instructors edit; slots are derived
// from it by the reconciler.
type WeeklyAvailability struct {
	Monday    DayAvailability `json:"monday"`
	Tuesday   DayAvailability `json:"tuesday"`
	Wednesday DayAvailability `json:"wednesday"`
	Thursday  DayAvailability `json:"thursday"`
	Friday    DayAvailability `json:"friday"`
	Saturday  DayAvailability `json:"saturday"`
	Sunday    DayAvailability `json:"sunday"`
}

// DefaultWeeklyAvailability returns the week created at account setup:
// weekdays enabled 09:00-17:00, weekend disabled
func DefaultWeeklyAvailability() WeeklyAvailability {
	return WeeklyAvailability{
		Monday:    DefaultDayAvailability(true),
		Tuesday:   DefaultDayAvailability(true),
		Wednesday: DefaultDayAvailability(true),
		Thursday:  DefaultDayAvailability(true),
		Friday:    DefaultDayAvailability(true),
		Saturday:  DefaultDayAvailability(false),
		Sunday:    DefaultDayAvailability(false),
	}
}

// ForWeekday returns the configuration for the given weekday key
func (w WeeklyAvailability) ForWeekday(day Weekday) DayAvailability {
	switch day {
	case Monday:
		return w.Monday
	case Tuesday:
		return w.Tuesday
	case Wednesday:
		return w.Wednesday
	case Thursday:
		return w.Thursday
	case Friday:
		return w.Friday
	case Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// ForDate returns the configuration for the weekday of the given date
func (w WeeklyAvailability) ForDate(date time.Time) DayAvailability {
	return w.ForWeekday(WeekdayOf(date))
}

// SetDay replaces one weekday's configuration wholesale
func (w *WeeklyAvailability) SetDay(day Weekday, config DayAvailability) {
	switch day {
	case Monday:
		w.Monday = config
	case Tuesday:
		w.Tuesday = config
	case Wednesday:
		w.Wednesday = config
	case Thursday:
		w.Thursday = config
	case Friday:
		w.Friday = config
	case Saturday:
		w.Saturday = config
	case Sunday:
		w.Sunday = config
	}
}

// Validate checks every day's configuration
func (w WeeklyAvailability) Validate() error {
	for _, day := range AllWeekdays {
		if err := w.ForWeekday(day).Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}
