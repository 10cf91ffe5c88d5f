package bookings

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error
}

// BarberRepository интерфейс репозитория мастеров
// (нужен для переключения занятости мастера при старте/завершении обслуживания)
type BarberRepository interface {
	SetStatusIf(ctx context.Context, id int64, from, to domain.BarberStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionNotifier хук уведомлений о переходах статусов
type TransitionNotifier interface {
	BookingTransition(ctx context.Context, salonID, bookingID int64, from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
