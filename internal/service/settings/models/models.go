package models

import (
	"github.com/gcare-app/GCare-BookingService/internal/domain"
	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// TimeBlockPayload описание одного time block в запросе/ответе
type TimeBlockPayload struct {
	ID        int64  `json:"id,omitempty"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "14:00"
	SubMode   string `json:"subMode"`   // "slot" | "queue"
}

// UpdateSettingsRequest запрос на изменение настроек приёма.
// Набор time blocks заменяется целиком - частичное редактирование не поддерживается.
type UpdateSettingsRequest struct {
	SalonID     int64              `json:"-"`
	Mode        string             `json:"mode"`
	OpenTime    string             `json:"openTime"`
	CloseTime   string             `json:"closeTime"`
	AutoConfirm bool               `json:"autoConfirm"`
	TimeBlocks  []TimeBlockPayload `json:"timeBlocks,omitempty"`
}

// SettingsResponse ответ с текущими настройками приёма
type SettingsResponse struct {
	Mode        string             `json:"mode"`
	OpenTime    string             `json:"openTime"`
	CloseTime   string             `json:"closeTime"`
	AutoConfirm bool               `json:"autoConfirm"`
	TimeBlocks  []TimeBlockPayload `json:"timeBlocks"`
}

// ApplyToDomain накладывает настройки из запроса на domain модель салона
func (r *UpdateSettingsRequest) ApplyToDomain(salon *domain.Salon) {
	salon.Mode = domain.SalonMode(r.Mode)
	salon.OpenTime = types.TimeString(r.OpenTime)
	salon.CloseTime = types.TimeString(r.CloseTime)
	salon.AutoConfirm = r.AutoConfirm

	blocks := make([]domain.TimeBlock, len(r.TimeBlocks))
	for i, b := range r.TimeBlocks {
		blocks[i] = domain.TimeBlock{
			SalonID:   salon.ID,
			StartTime: types.TimeString(b.StartTime),
			EndTime:   types.TimeString(b.EndTime),
			SubMode:   domain.SalonMode(b.SubMode),
		}
	}
	salon.TimeBlocks = blocks
}

// FromDomainSalon конвертирует настройки салона в DTO
func FromDomainSalon(s *domain.Salon) *SettingsResponse {
	blocks := make([]TimeBlockPayload, len(s.TimeBlocks))
	for i, b := range s.TimeBlocks {
		blocks[i] = TimeBlockPayload{
			ID:        b.ID,
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
			SubMode:   string(b.SubMode),
		}
	}

	return &SettingsResponse{
		Mode:        string(s.Mode),
		OpenTime:    s.OpenTime.String(),
		CloseTime:   s.CloseTime.String(),
		AutoConfirm: s.AutoConfirm,
		TimeBlocks:  blocks,
	}
}
