package apply_exception

import "time"

// Request модель запроса на создание и применение исключения расписания
type Request struct {
	InstructorID     int64
	Type             string // vacation | illness | holiday | training | other
	StartDate        time.Time
	EndDate          time.Time
	IsRecurring      bool
	RecurringPattern *string // yearly | monthly
}

// Response результат применения исключения.
// BlockedSlotIDs - свободные слоты, переведённые в blocked.
// WarnedBookedSlotIDs - занятые слоты внутри диапазона: они НЕ отменяются
// автоматически; для их отмены требуется отдельное явное подтверждение.
type Response struct {
	ExceptionID         string   `json:"exceptionId"`
	Dates               []string `json:"dates"`
	BlockedSlotIDs      []string `json:"blockedSlotIds"`
	WarnedBookedSlotIDs []string `json:"warnedBookedSlotIds"`
}

// ConfirmRequest модель запроса на подтверждение отмены занятых слотов
type ConfirmRequest struct {
	InstructorID int64
}

// ConfirmResponse результат подтверждения: какие занятые слоты отменены
type ConfirmResponse struct {
	ExceptionID      string   `json:"exceptionId"`
	CancelledSlotIDs []string `json:"cancelledSlotIds"`
}
