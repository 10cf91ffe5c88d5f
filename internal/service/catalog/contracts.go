package catalog

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetBySalon(ctx context.Context, salonID int64) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	CreateVersion(ctx context.Context, old *domain.Service, updated *domain.Service) (*domain.Service, error)
	Archive(ctx context.Context, salonID, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
// (нужен для определения, ссылаются ли бронирования на услугу)
type BookingRepository interface {
	CountByService(ctx context.Context, serviceID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
