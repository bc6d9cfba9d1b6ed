package domain

import "github.com/m04kA/DS-ScheduleService/pkg/types"

// Default configuration values
const (
	DefaultSlotDurationMinutes  = 90
	DefaultBreakDurationMinutes = 15
	DefaultHorizonDays          = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes  = 15
	MaxSlotDurationMinutes  = 480 // 8 hours
	MinBreakDurationMinutes = 0
	MaxBreakDurationMinutes = 240
	MaxNotesLength          = 500
	MaxReasonLength         = 500
	MaxAdminCommentLength   = 500
	MaxTemplateNameLength   = 100

	// RecurrenceLookaheadDays caps how far recurring exceptions are
	// expanded into concrete dates
	RecurrenceLookaheadDays = 365

	// MaxReconcileRangeDays caps a single reconcile window
	MaxReconcileRangeDays = 365
)

// Operating window: working-hour intervals and slots must fall inside it
const (
	OpeningTime types.TimeString = "06:00"
	ClosingTime types.TimeString = "22:00"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotDurationChoices are the durations offered to instructors in the UI.
// The model accepts any duration within the min/max bounds.
var SlotDurationChoices = []int{60, 90, 120, 150, 180}

// BreakDurationChoices are the break lengths offered to instructors in the UI
var BreakDurationChoices = []int{0, 15, 30, 45, 60}

// LiveStatuses are slot statuses that occupy time on the calendar.
// Two live slots on the same date must never overlap.
var LiveStatuses = []SlotStatus{
	StatusAvailable,
	StatusBooked,
	StatusInProgress,
}

// ProtectedStatuses are slot statuses that make a date immune to
// destructive regeneration
var ProtectedStatuses = []SlotStatus{
	StatusBooked,
	StatusInProgress,
}
