package create_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден или архивирован
	ErrSalonNotFound = errors.New("create_booking: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или архивирована
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrBarberNotFound возвращается, когда запрошенный мастер не найден в салоне
	ErrBarberNotFound = errors.New("create_booking: barber not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrOutsideOperatingHours возвращается, когда запрошенное время вне
	// рабочих часов салона
	ErrOutsideOperatingHours = errors.New("create_booking: outside operating hours")

	// ErrSlotNotAvailable возвращается, когда запрошенный интервал уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
