package notifyservice

// ProtectedDayDetail детали по одному защищённому дню
type ProtectedDayDetail struct {
	Date        string `json:"date"` // YYYY-MM-DD
	BookedSlots int    `json:"bookedSlots"`
}

// ReconcileSummary сводка одного прогона реконсиляции расписания
type ReconcileSummary struct {
	InstructorID        int64                `json:"instructorId"`
	GeneratedCount      int                  `json:"generatedCount"`
	RegeneratedDates    []string             `json:"regeneratedDates"`
	SkippedDates        []string             `json:"skippedDates"`
	ProtectedDayDetails []ProtectedDayDetail `json:"protectedDayDetails"`
	Warnings            []string             `json:"warnings,omitempty"`
}
