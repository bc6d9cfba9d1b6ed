package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestException_Validate(t *testing.T) {
	yearly := RecurrenceYearly

	valid := Exception{
		Type:      ExceptionVacation,
		StartDate: date(2026, 7, 1),
		EndDate:   date(2026, 7, 14),
	}
	assert.NoError(t, valid.Validate())

	reversed := valid
	reversed.StartDate, reversed.EndDate = reversed.EndDate, reversed.StartDate
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidDateRange)

	recurringNoPattern := valid
	recurringNoPattern.IsRecurring = true
	assert.ErrorIs(t, recurringNoPattern.Validate(), ErrMissingRecurrencePattern)

	recurring := valid
	recurring.IsRecurring = true
	recurring.RecurringPattern = &yearly
	assert.NoError(t, recurring.Validate())
}

func TestException_Dates_OneOff(t *testing.T) {
	e := Exception{
		Type:      ExceptionIllness,
		StartDate: date(2026, 3, 10),
		EndDate:   date(2026, 3, 12),
	}

	dates := e.Dates(date(2026, 3, 1))
	require.Len(t, dates, 3)
	assert.Equal(t, date(2026, 3, 10), dates[0])
	assert.Equal(t, date(2026, 3, 12), dates[2])
}

func TestException_Dates_MonthlyRecurrence(t *testing.T) {
	monthly := RecurrenceMonthly
	e := Exception{
		Type:             ExceptionOther,
		StartDate:        date(2026, 1, 15),
		EndDate:          date(2026, 1, 15),
		IsRecurring:      true,
		RecurringPattern: &monthly,
	}

	from := date(2026, 1, 1)
	dates := e.Dates(from)
	require.NotEmpty(t, dates)
	assert.Equal(t, date(2026, 1, 15), dates[0])
	assert.Equal(t, date(2026, 2, 15), dates[1])

	// Развёртка ограничена горизонтом повторения
	horizon := from.AddDate(0, 0, RecurrenceLookaheadDays)
	for _, d := range dates {
		assert.False(t, d.After(horizon), "date %s beyond horizon", d.Format(DateFormat))
	}
}

func TestException_Dates_YearlyStartsInPast(t *testing.T) {
	yearly := RecurrenceYearly
	e := Exception{
		Type:             ExceptionHoliday,
		StartDate:        date(2020, 12, 31),
		EndDate:          date(2021, 1, 2),
		IsRecurring:      true,
		RecurringPattern: &yearly,
	}

	from := date(2026, 6, 1)
	dates := e.Dates(from)
	require.NotEmpty(t, dates)
	for _, d := range dates {
		assert.False(t, d.Before(from), "date %s before reference", d.Format(DateFormat))
	}
	assert.Equal(t, date(2026, 12, 31), dates[0])
}
