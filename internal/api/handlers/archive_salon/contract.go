package archive_salon

import "context"

type SettingsService interface {
	Archive(ctx context.Context, salonID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
