package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/bookings"
	"github.com/gcare-app/GCare-BookingService/internal/service/bookings/models"
)

const (
	msgUnauthorized       = "authentication required"
	msgInvalidBookingID   = "invalid booking id"
	msgUnknownAction      = "unknown booking action"
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgInvalidTransition  = "booking status transition is not allowed"
	msgBarberUnavailable  = "assigned barber is unavailable"
	msgCannotCancel       = "booking cannot be cancelled"
)

const (
	actionAccept   = "accept"
	actionStart    = "start"
	actionComplete = "complete"
	actionCancel   = "cancel"
)

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

// Handle PATCH /api/v1/salon/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}
	action := vars["action"]

	var result *models.BookingResponse
	switch action {
	case actionAccept:
		result, err = h.service.Accept(r.Context(), salonID, bookingID)
	case actionStart:
		result, err = h.service.Start(r.Context(), salonID, bookingID)
	case actionComplete:
		result, err = h.service.Complete(r.Context(), salonID, bookingID)
	case actionCancel:
		var req models.CancelBookingRequest
		if decodeErr := handlers.DecodeJSON(r, &req); decodeErr != nil {
			h.logger.Warn("PATCH /salon/bookings/{id}/cancel - Invalid request body: %v", decodeErr)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		result, err = h.service.Cancel(r.Context(), salonID, bookingID, &req)
	default:
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	if err != nil {
		switch {
		// Чужое бронирование неотличимо от несуществующего
		case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /salon/bookings/{id}/%s - Booking not found: salon_id=%d, booking_id=%d",
				action, salonID, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /salon/bookings/{id}/%s - Invalid transition: salon_id=%d, booking_id=%d",
				action, salonID, bookingID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrBarberUnavailable):
			h.logger.Warn("PATCH /salon/bookings/{id}/%s - Barber unavailable: salon_id=%d, booking_id=%d",
				action, salonID, bookingID)
			handlers.RespondConflict(w, msgBarberUnavailable)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /salon/bookings/{id}/%s - Cannot cancel: salon_id=%d, booking_id=%d",
				action, salonID, bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /salon/bookings/{id}/%s - Invalid input: %v", action, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /salon/bookings/{id}/%s - Failed to update booking: salon_id=%d, booking_id=%d: %v",
				action, salonID, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /salon/bookings/{id}/%s - Booking updated: salon_id=%d, booking_id=%d, status=%s",
		action, salonID, bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
