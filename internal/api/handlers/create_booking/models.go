package create_booking

import (
	"time"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	createBooking "github.com/gcare-app/GCare-BookingService/internal/usecase/create_booking"
	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID       int64  `json:"salonId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	ServiceID     int64  `json:"serviceId"`
	BarberID      *int64 `json:"barberId,omitempty"`
	BookingDate   string `json:"bookingDate"` // "2026-03-15"
	StartTime     string `json:"startTime"`   // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	SalonID         int64   `json:"salonId"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	ServiceID       int64   `json:"serviceId"`
	BarberID        *int64  `json:"barberId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime,omitempty"`
	TicketNumber    *int64  `json:"ticketNumber,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	Price           float64 `json:"price"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SalonID:       r.SalonID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceID:     r.ServiceID,
		BarberID:      r.BarberID,
		Date:          bookingDate,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		ServiceID:       resp.ServiceID,
		BarberID:        resp.BarberID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		TicketNumber:    resp.TicketNumber,
		DurationMinutes: resp.DurationMinutes,
		Type:            resp.Type,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		Price:           resp.Price,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	if !resp.StartTime.IsZero() {
		out.StartTime = resp.StartTime.String()
	}

	return out
}
