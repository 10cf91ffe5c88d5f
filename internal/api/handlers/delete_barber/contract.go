package delete_barber

import "context"

type BarbersService interface {
	Delete(ctx context.Context, salonID, barberID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
