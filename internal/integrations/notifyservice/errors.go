package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrUnavailable возвращается, когда сервис уведомлений недоступен
	ErrUnavailable = errors.New("notifyservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")
)
