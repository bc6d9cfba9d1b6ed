package transfer_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidPayload возвращается, когда импортируемый снимок не проходит валидацию
	ErrInvalidPayload = errors.New("invalid schedule payload")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
