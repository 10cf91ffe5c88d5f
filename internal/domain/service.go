package domain

import "time"

// Service represents a service offered by a salon.
// Once referenced by a booking, a service row is immutable: edits create a new
// version and archive the old one, so completed bookings keep accurate prices.
type Service struct {
	ID      int64
	SalonID int64

	Name            string
	DurationMinutes int // > 0
	Price           float64 // > 0
	Category        string

	Version    int
	ArchivedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsArchived returns true if the service has been archived
// (soft-deleted or superseded by a newer version)
func (s *Service) IsArchived() bool {
	return s.ArchivedAt != nil
}
