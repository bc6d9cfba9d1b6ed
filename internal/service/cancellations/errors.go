package cancellations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRequestNotFound возвращается, когда запрос на отмену не найден
	ErrRequestNotFound = errors.New("cancellation request not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotNotBooked возвращается, когда слот не забронирован и отменять нечего
	ErrSlotNotBooked = errors.New("slot is not booked")

	// ErrAlreadyProcessed возвращается при повторной обработке запроса:
	// approved и rejected - терминальные состояния
	ErrAlreadyProcessed = errors.New("cancellation request already processed")

	// ErrCommentRequired возвращается при отклонении запроса без комментария
	ErrCommentRequired = errors.New("admin comment is required for rejection")

	// ErrAccessDenied возвращается при попытке работать с чужим запросом или слотом
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
