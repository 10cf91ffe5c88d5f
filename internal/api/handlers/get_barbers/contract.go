package get_barbers

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/barbers/models"
)

type BarbersService interface {
	List(ctx context.Context, salonID int64) (*models.BarberListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
