package get_salon_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	"github.com/gcare-app/GCare-BookingService/internal/service/bookings/models"
)

// parseQuery разбирает query-параметры фильтра бронирований.
func parseQuery(salonID int64, query url.Values) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{SalonID: salonID}

	if raw := query.Get("barberId"); raw != "" {
		barberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid barberId: %q", raw)
		}
		req.BarberID = &barberID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %q", raw)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %q", raw)
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("type"); raw != "" {
		req.Type = &raw
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %q", raw)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
