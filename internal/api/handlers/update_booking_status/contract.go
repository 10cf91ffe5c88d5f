package update_booking_status

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Accept(ctx context.Context, salonID, bookingID int64) (*models.BookingResponse, error)
	Start(ctx context.Context, salonID, bookingID int64) (*models.BookingResponse, error)
	Complete(ctx context.Context, salonID, bookingID int64) (*models.BookingResponse, error)
	Cancel(ctx context.Context, salonID, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
