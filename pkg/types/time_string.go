package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It never carries a date or a timezone; zero-padded representation
// makes lexicographic comparison equivalent to chronological order.
type TimeString string

// TimeFormat is the layout used for TimeString values
const TimeFormat = "15:04"

// MinutesPerDay is the number of minutes in one day
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat is returned when a string does not match "HH:MM"
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

	// ErrTimeOutOfRange is returned when a minute offset falls outside a single day
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NewTimeString creates a TimeString from the time-of-day part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses s as "HH:MM" with hour in [0,23] and minute in [0,59]
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes converts a minute offset from midnight into a TimeString
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks that the value matches "HH:MM"
func (t TimeString) Validate() error {
	if !timePattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero returns true for an empty value
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the offset from midnight in minutes
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	var hour, minute int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return hour*60 + minute, nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Fails if the result leaves the current day.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// String implements fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer for database storage
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("%w: unsupported source %T", ErrInvalidTimeFormat, src)
	}
	return nil
}
