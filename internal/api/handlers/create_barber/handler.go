package create_barber

import (
	"errors"
	"net/http"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/barbers"
	"github.com/gcare-app/GCare-BookingService/internal/service/barbers/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUnauthorized       = "authentication required"
)

type Handler struct {
	service BarbersService
	logger  Logger
}

func NewHandler(service BarbersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salon/barbers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salon/barbers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, barbers.ErrInvalidInput):
			h.logger.Warn("POST /salon/barbers - Invalid input: salon_id=%d: %v", salonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salon/barbers - Failed to create barber: salon_id=%d: %v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salon/barbers - Barber created: barber_id=%d, salon_id=%d", result.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
