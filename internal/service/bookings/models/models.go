package models

import (
	"errors"
	"time"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidType возвращается при некорректном типе приёма
	ErrInvalidType = errors.New("invalid booking type")
)

// Request модели

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	SalonID         int64      `json:"-"`
	BarberID        *int64     `json:"barberId,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Type            *string    `json:"type,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:         r.SalonID,
		BarberID:        r.BarberID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Type != nil {
		bookingType, err := ToDomainBookingType(*r.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = &bookingType
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	SalonID       int64  `json:"salonId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	ServiceID     int64  `json:"serviceId"`
	BarberID      *int64 `json:"barberId,omitempty"`

	BookingDate     string `json:"bookingDate"`         // "2026-03-15"
	StartTime       string `json:"startTime,omitempty"` // "10:00", только для type = slot
	DurationMinutes int    `json:"durationMinutes"`
	TicketNumber    *int64 `json:"ticketNumber,omitempty"` // только для type = queue

	Type   string `json:"type"`
	Status string `json:"status"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	Price       float64 `json:"price"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		SalonID:            b.SalonID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		ServiceID:          b.ServiceID,
		BarberID:           b.BarberID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		DurationMinutes:    b.DurationMinutes,
		TicketNumber:       b.TicketNumber,
		Type:               string(b.Type),
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		Price:              b.Price,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if !b.StartTime.IsZero() {
		resp.StartTime = b.StartTime.String()
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if dto := FromDomainBooking(booking); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	switch s {
	case domain.StatusPending,
		domain.StatusUpcoming,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// ToDomainBookingType конвертирует строку в domain.BookingType с валидацией
func ToDomainBookingType(bookingType string) (domain.BookingType, error) {
	t := domain.BookingType(bookingType)
	switch t {
	case domain.BookingTypeSlot, domain.BookingTypeQueue:
		return t, nil
	}
	return "", ErrInvalidType
}
