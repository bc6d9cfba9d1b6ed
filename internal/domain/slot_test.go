package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from SlotStatus
		to   SlotStatus
		want bool
	}{
		{StatusAvailable, StatusBooked, true},
		{StatusAvailable, StatusBlocked, true},
		{StatusAvailable, StatusCompleted, false},
		{StatusAvailable, StatusCancelled, false},
		{StatusBooked, StatusInProgress, true},
		{StatusBooked, StatusCompleted, true},
		{StatusBooked, StatusNoShow, true},
		{StatusBooked, StatusCancelled, true},
		{StatusBooked, StatusAvailable, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusNoShow, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusBooked, false},
		{StatusBlocked, StatusAvailable, true},
		{StatusBlocked, StatusBooked, false},
		{StatusCompleted, StatusAvailable, false},
		{StatusCancelled, StatusBooked, false},
	}

	for _, tt := range tests {
		slot := Slot{Status: tt.from}
		assert.Equal(t, tt.want, slot.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestSlot_Predicates(t *testing.T) {
	assert.True(t, (&Slot{Status: StatusAvailable}).IsLive())
	assert.True(t, (&Slot{Status: StatusBooked}).IsLive())
	assert.True(t, (&Slot{Status: StatusInProgress}).IsLive())
	assert.False(t, (&Slot{Status: StatusBlocked}).IsLive())
	assert.False(t, (&Slot{Status: StatusCancelled}).IsLive())

	assert.True(t, (&Slot{Status: StatusBooked}).IsProtected())
	assert.True(t, (&Slot{Status: StatusInProgress}).IsProtected())
	assert.False(t, (&Slot{Status: StatusAvailable}).IsProtected())

	assert.True(t, (&Slot{Status: StatusAvailable}).CanBeDeleted())
	assert.False(t, (&Slot{Status: StatusBooked}).CanBeDeleted())
	assert.False(t, (&Slot{Status: StatusCompleted}).CanBeDeleted())
}

func TestSlot_Overlaps(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	a := &Slot{Date: monday, StartTime: "08:00", EndTime: "10:00"}
	b := &Slot{Date: monday, StartTime: "09:00", EndTime: "11:00"}
	c := &Slot{Date: monday, StartTime: "10:00", EndTime: "12:00"}
	d := &Slot{Date: tuesday, StartTime: "08:00", EndTime: "10:00"}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c), "back-to-back slots do not overlap")
	assert.False(t, a.Overlaps(d), "different dates never overlap")
}
