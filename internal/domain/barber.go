package domain

import "time"

// BarberStatus represents the availability status of a barber
type BarberStatus string

const (
	BarberActive BarberStatus = "active" // свободен, может быть назначен на бронирование
	BarberBusy   BarberStatus = "busy"   // обслуживает бронирование
	BarberOff    BarberStatus = "off"    // не работает
)

// Barber represents a salon employee.
// Status flips to busy while serving a booking and back to active on completion.
type Barber struct {
	ID      int64
	SalonID int64

	Name        string
	Specialties []string // непустой набор специализаций
	Experience  string
	ImageURL    string
	Status      BarberStatus

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted returns true if the barber has been soft-deleted by the owner
func (b *Barber) IsDeleted() bool {
	return b.DeletedAt != nil
}

// IsAvailable returns true if the barber can take a new customer right now
func (b *Barber) IsAvailable() bool {
	return b.Status == BarberActive && !b.IsDeleted()
}
