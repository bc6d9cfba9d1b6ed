package apply_exception

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("exception not found")

	// ErrAccessDenied возвращается при попытке работать с чужим исключением
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
