package reconcile_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange возвращается при некорректном окне реконсиляции
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrWorkingHoursNotFound возвращается, когда у инструктора нет рабочих часов
	ErrWorkingHoursNotFound = errors.New("working hours not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
