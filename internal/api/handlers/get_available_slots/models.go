package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	getAvailableSlots "github.com/gcare-app/GCare-BookingService/internal/usecase/get_available_slots"
)

// SlotsResponse ответ со списком доступных слотов
type SlotsResponse struct {
	Date      string         `json:"date"` // "2026-03-15"
	SalonID   int64          `json:"salonId"`
	ServiceID int64          `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// SlotResponse один временной слот
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// parseQuery разбирает query-параметры запроса слотов.
func parseQuery(salonID int64, query url.Values) (*getAvailableSlots.Request, error) {
	rawServiceID := query.Get("serviceId")
	if rawServiceID == "" {
		return nil, fmt.Errorf("serviceId is required")
	}
	serviceID, err := strconv.ParseInt(rawServiceID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid serviceId: %q", rawServiceID)
	}

	rawDate := query.Get("date")
	if rawDate == "" {
		return nil, fmt.Errorf("date is required")
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %q", rawDate)
	}

	req := &getAvailableSlots.Request{
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      date,
	}

	if raw := query.Get("barberId"); raw != "" {
		barberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid barberId: %q", raw)
		}
		req.BarberID = &barberID
	}

	return req, nil
}

// fromUseCaseResponse конвертирует ответ usecase в HTTP DTO.
func fromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	result := &SlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		SalonID:   resp.SalonID,
		ServiceID: resp.ServiceID,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}
	return result
}
