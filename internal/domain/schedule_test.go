package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("wednesday")
	require.NoError(t, err)
	assert.Equal(t, Wednesday, day)

	_, err = ParseWeekday("Wednesday")
	assert.ErrorIs(t, err, ErrUnknownWeekday)

	_, err = ParseWeekday("someday")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestWeekdayOf(t *testing.T) {
	// 2026-01-05 is a Monday
	assert.Equal(t, Monday, WeekdayOf(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)))
}

func TestDayAvailability_Validate(t *testing.T) {
	valid := DayAvailability{
		Enabled:              true,
		Intervals:            []TimeInterval{{Start: "09:00", End: "13:00"}, {Start: "14:00", End: "18:00"}},
		SlotDurationMinutes:  90,
		BreakDurationMinutes: 15,
	}
	assert.NoError(t, valid.Validate())

	tooShort := valid
	tooShort.SlotDurationMinutes = MinSlotDurationMinutes - 1
	assert.ErrorIs(t, tooShort.Validate(), ErrInvalidDuration)

	tooLongBreak := valid
	tooLongBreak.BreakDurationMinutes = MaxBreakDurationMinutes + 1
	assert.ErrorIs(t, tooLongBreak.Validate(), ErrInvalidDuration)

	overlapping := valid
	overlapping.Intervals = []TimeInterval{{Start: "09:00", End: "13:00"}, {Start: "12:00", End: "16:00"}}
	assert.ErrorIs(t, overlapping.Validate(), ErrIntervalsOverlap)

	outOfWindow := valid
	outOfWindow.Intervals = []TimeInterval{{Start: "05:00", End: "08:00"}}
	assert.ErrorIs(t, outOfWindow.Validate(), ErrInvalidInterval)
}

func TestDayAvailability_CanAddInterval(t *testing.T) {
	day := DayAvailability{
		Enabled:              true,
		Intervals:            []TimeInterval{{Start: "08:00", End: "10:00"}},
		SlotDurationMinutes:  90,
		BreakDurationMinutes: 15,
	}

	assert.NoError(t, day.CanAddInterval(TimeInterval{Start: "10:00", End: "12:00"}))

	err := day.CanAddInterval(TimeInterval{Start: "09:00", End: "11:00"})
	assert.ErrorIs(t, err, ErrIntervalsOverlap)
	// Конфигурация дня остаётся прежней
	assert.Len(t, day.Intervals, 1)

	assert.ErrorIs(t, day.CanAddInterval(TimeInterval{Start: "21:00", End: "23:00"}), ErrInvalidInterval)
}

func TestDayAvailability_Normalize(t *testing.T) {
	day := DayAvailability{
		Intervals: []TimeInterval{
			{Start: "14:00", End: "18:00"},
			{Start: "09:00", End: "13:00"},
		},
	}
	day.Normalize()
	assert.Equal(t, types.TimeString("09:00"), day.Intervals[0].Start)
	assert.Equal(t, types.TimeString("14:00"), day.Intervals[1].Start)
}

func TestDefaultWeeklyAvailability(t *testing.T) {
	week := DefaultWeeklyAvailability()
	require.NoError(t, week.Validate())

	for _, day := range []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday} {
		config := week.ForWeekday(day)
		assert.True(t, config.Enabled, "%s should be enabled", day)
		require.Len(t, config.Intervals, 1)
		assert.Equal(t, TimeInterval{Start: "09:00", End: "17:00"}, config.Intervals[0])
	}
	assert.False(t, week.ForWeekday(Saturday).Enabled)
	assert.False(t, week.ForWeekday(Sunday).Enabled)
}

func TestWeeklyAvailability_SetDay(t *testing.T) {
	week := DefaultWeeklyAvailability()
	saturday := DayAvailability{
		Enabled:              true,
		Intervals:            []TimeInterval{{Start: "10:00", End: "14:00"}},
		SlotDurationMinutes:  60,
		BreakDurationMinutes: 10,
	}
	week.SetDay(Saturday, saturday)

	got := week.ForDate(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)) // Saturday
	assert.Equal(t, saturday, got)
}
