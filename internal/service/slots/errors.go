package slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotConflict возвращается, когда новый слот пересекается с живыми
	// слотами того же дня
	ErrSlotConflict = errors.New("slot overlaps existing slots")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStudentRequired возвращается при бронировании без указания студента
	ErrStudentRequired = errors.New("studentId is required for booking")

	// ErrSlotNotDeletable возвращается при попытке удалить слот с историей
	// бронирования
	ErrSlotNotDeletable = errors.New("only available slots can be deleted")

	// ErrAccessDenied возвращается при попытке работать с чужим слотом
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
