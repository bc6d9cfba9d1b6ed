package reconcile_schedule

import "time"

// Request модель запроса на реконсиляцию расписания.
// Если окно не задано, используется [сегодня, сегодня + горизонт].
type Request struct {
	InstructorID int64      // ID инструктора
	StartDate    *time.Time // Начало окна (опционально)
	EndDate      *time.Time // Конец окна (опционально)
}

// ProtectedDayDetail детали по одному защищённому дню: сколько
// подтверждённых занятий не позволили перегенерировать день
type ProtectedDayDetail struct {
	Date        string `json:"date"` // YYYY-MM-DD
	BookedSlots int    `json:"bookedSlots"`
}

// Response результат реконсиляции. SkippedDates и ProtectedDayDetails -
// обязательная часть результата: UI показывает инструктору, какие дни
// защищены и почему изменения к ним не применились.
type Response struct {
	InstructorID        int64                `json:"instructorId"`
	StartDate           string               `json:"startDate"`
	EndDate             string               `json:"endDate"`
	GeneratedCount      int                  `json:"generatedCount"`
	RegeneratedDates    []string             `json:"regeneratedDates"`
	SkippedDates        []string             `json:"skippedDates"`
	ProtectedDayDetails []ProtectedDayDetail `json:"protectedDayDetails"`
	Warnings            []string             `json:"warnings,omitempty"`
}
