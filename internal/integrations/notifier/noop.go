package notifier

import "context"

// Noop используется, когда Kafka выключена в конфигурации
type Noop struct{}

// NewNoop создает notifier-заглушку
func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) BookingTransition(ctx context.Context, salonID, bookingID int64, from, to string) {}

func (Noop) JobTransition(ctx context.Context, partnerID, jobID int64, from, to string) {}

func (Noop) Close() error { return nil }
