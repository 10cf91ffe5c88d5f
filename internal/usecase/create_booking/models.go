package create_booking

import (
	"time"

	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	SalonID       int64            // ID салона
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	ServiceID     int64            // ID услуги из каталога салона
	BarberID      *int64           // ID мастера (опционально, nil = любой)
	Date          time.Time        // Дата визита (без времени)
	StartTime     types.TimeString // Желаемое время визита (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	SalonID       int64            // ID салона
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	ServiceID     int64            // ID услуги
	BarberID      *int64           // ID мастера, если был выбран
	BookingDate   time.Time        // Дата визита
	StartTime     types.TimeString // Время начала (только для type = slot)
	TicketNumber  *int64           // Номер талона (только для type = queue)

	DurationMinutes int    // Длительность в минутах
	Type            string // Тип приёма: slot или queue
	Status          string // Начальный статус бронирования

	// Денормализованные данные услуги
	ServiceName string  // Название услуги
	Price       float64 // Цена на момент создания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
