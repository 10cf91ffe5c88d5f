package settings

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidConfiguration возвращается, когда новые настройки нарушают
	// инварианты режимов приёма (разбиение time blocks, рабочие часы)
	ErrInvalidConfiguration = errors.New("invalid salon configuration")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
