package models

import (
	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

// Request модели

// RegisterSalonRequest запрос на регистрацию салона
type RegisterSalonRequest struct {
	OwnerName string `json:"ownerName"`
	SalonName string `json:"salonName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// RegisterPartnerRequest запрос на регистрацию партнёра
type RegisterPartnerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest запрос на вход (общий для салонов и партнёров)
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response модели

// SalonAuthResponse ответ с токеном и профилем салона
type SalonAuthResponse struct {
	Token string        `json:"token"`
	Salon SalonResponse `json:"salon"`
}

// SalonResponse публичный профиль салона
type SalonResponse struct {
	ID          int64  `json:"id"`
	OwnerName   string `json:"ownerName"`
	SalonName   string `json:"salonName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Mode        string `json:"mode"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
	AutoConfirm bool   `json:"autoConfirm"`
}

// PartnerAuthResponse ответ с токеном и профилем партнёра
type PartnerAuthResponse struct {
	Token   string          `json:"token"`
	Partner PartnerResponse `json:"partner"`
}

// PartnerResponse публичный профиль партнёра
type PartnerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Методы конвертации

// FromDomainSalon конвертирует domain модель в DTO
func FromDomainSalon(s *domain.Salon) SalonResponse {
	return SalonResponse{
		ID:          s.ID,
		OwnerName:   s.OwnerName,
		SalonName:   s.SalonName,
		Email:       s.Email,
		Phone:       s.Phone,
		Mode:        string(s.Mode),
		OpenTime:    s.OpenTime.String(),
		CloseTime:   s.CloseTime.String(),
		AutoConfirm: s.AutoConfirm,
	}
}

// FromDomainPartner конвертирует domain модель в DTO
func FromDomainPartner(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
	}
}
