package auth

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error)
	GetByEmail(ctx context.Context, email string) (*domain.Salon, error)
}

// PartnerRepository интерфейс репозитория партнёров
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error)
	GetByEmail(ctx context.Context, email string) (*domain.Partner, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
