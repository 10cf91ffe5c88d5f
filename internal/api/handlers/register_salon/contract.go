package register_salon

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/auth/models"
)

type AuthService interface {
	RegisterSalon(ctx context.Context, req *models.RegisterSalonRequest) (*models.SalonAuthResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
