package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrIntervalConflict возвращается, когда новый интервал пересекается
	// с уже настроенными интервалами дня
	ErrIntervalConflict = errors.New("interval overlaps existing intervals")

	// ErrTemplateNotFound возвращается, когда шаблон расписания не найден
	ErrTemplateNotFound = errors.New("schedule template not found")

	// ErrAccessDenied возвращается при попытке работать с чужим шаблоном
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
