package exceptions

import "errors"

var (
	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("exception not found")

	// ErrAccessDenied возвращается при попытке работать с чужим исключением
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
