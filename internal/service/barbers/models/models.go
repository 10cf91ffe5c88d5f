package models

import (
	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

// CreateBarberRequest запрос на добавление мастера
type CreateBarberRequest struct {
	SalonID     int64    `json:"-"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
	Experience  string   `json:"experience,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// BarberResponse ответ с данными мастера
type BarberResponse struct {
	ID          int64    `json:"id"`
	SalonID     int64    `json:"salonId"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
	Experience  string   `json:"experience,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Status      string   `json:"status"`
}

// BarberListResponse ответ со списком мастеров
type BarberListResponse struct {
	Barbers []BarberResponse `json:"barbers"`
}

// FromDomainBarber конвертирует domain модель в DTO
func FromDomainBarber(b *domain.Barber) *BarberResponse {
	if b == nil {
		return nil
	}
	return &BarberResponse{
		ID:          b.ID,
		SalonID:     b.SalonID,
		Name:        b.Name,
		Specialties: b.Specialties,
		Experience:  b.Experience,
		ImageURL:    b.ImageURL,
		Status:      string(b.Status),
	}
}

// FromDomainBarberList конвертирует список domain моделей в DTO
func FromDomainBarberList(barbers []*domain.Barber) *BarberListResponse {
	resp := &BarberListResponse{
		Barbers: make([]BarberResponse, 0, len(barbers)),
	}
	for _, barber := range barbers {
		if dto := FromDomainBarber(barber); dto != nil {
			resp.Barbers = append(resp.Barbers, *dto)
		}
	}
	return resp
}
