package barbers

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

// BarberRepository интерфейс репозитория мастеров
type BarberRepository interface {
	Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error)
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetBySalon(ctx context.Context, salonID int64) ([]*domain.Barber, error)
	SoftDelete(ctx context.Context, salonID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
