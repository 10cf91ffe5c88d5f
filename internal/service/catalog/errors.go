package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrAccessDenied возвращается при попытке изменить чужую услугу
	ErrAccessDenied = errors.New("access denied")

	// ErrServiceArchived возвращается при попытке изменить архивированную услугу
	ErrServiceArchived = errors.New("service is archived")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
