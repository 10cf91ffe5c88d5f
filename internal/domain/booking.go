package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// BookingType represents the intake type of a booking, fixed at creation
type BookingType string

const (
	BookingTypeSlot  BookingType = "slot"
	BookingTypeQueue BookingType = "queue"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusUpcoming   BookingStatus = "upcoming"
	StatusInProgress BookingStatus = "in-progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// ErrInvalidTransition возвращается при попытке неразрешённого перехода статуса
var ErrInvalidTransition = errors.New("domain: invalid status transition")

// bookingTransitions таблица разрешённых переходов статусов бронирования.
// pending -> {upcoming, cancelled}
// upcoming -> {in-progress, cancelled}
// in-progress -> {completed}
// completed и cancelled - терминальные.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusUpcoming, StatusCancelled},
	StatusUpcoming:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransitionBooking returns true if a booking may move from one status to another
func CanTransitionBooking(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateBookingTransition returns ErrInvalidTransition for a non-adjacent status request
func ValidateBookingTransition(from, to BookingStatus) error {
	if !CanTransitionBooking(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// InitialBookingStatus возвращает стартовый статус нового бронирования.
// При включённом auto-confirm бронирование минует ручное подтверждение.
func InitialBookingStatus(autoConfirm bool) BookingStatus {
	if autoConfirm {
		return StatusUpcoming
	}
	return StatusPending
}

// Booking represents a salon-side service reservation
type Booking struct {
	ID      int64
	SalonID int64

	CustomerName  string
	CustomerPhone string

	ServiceID int64
	BarberID  *int64 // nil = любой свободный мастер, салон распределяет сам

	BookingDate     time.Time
	StartTime       types.TimeString // заполнено для type = slot
	DurationMinutes int
	TicketNumber    *int64 // заполнено для type = queue
	TimeBlockID     *int64 // заполнено, если режим разрешён через hybrid time block

	Type   BookingType
	Status BookingStatus

	// Denormalized data for history: цена и название фиксируются на момент создания
	ServiceName string
	Price       float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot or queue ticket
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no transition leaves the current status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return CanTransitionBooking(b.Status, StatusCancelled)
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	BarberID        *int64         // Фильтр по мастеру (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	Type            *BookingType   // Фильтр по типу приёма (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
