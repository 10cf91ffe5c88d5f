package get_salon_bookings

import (
	"errors"
	"net/http"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/bookings"
)

const msgUnauthorized = "authentication required"

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salon/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := parseQuery(salonID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /salon/bookings - Invalid query: salon_id=%d: %v", salonID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.GetSalonBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /salon/bookings - Invalid filter: salon_id=%d: %v", salonID, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /salon/bookings - Failed to list bookings: salon_id=%d: %v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salon/bookings - Listed %d bookings: salon_id=%d", len(result.Bookings), salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
