package create_barber

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/barbers/models"
)

type BarbersService interface {
	Create(ctx context.Context, req *models.CreateBarberRequest) (*models.BarberResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
