package delete_barber

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/barbers"
)

const (
	msgInvalidBarberID = "invalid barber id"
	msgBarberNotFound  = "barber not found"
	msgUnauthorized    = "authentication required"
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

// Handle DELETE /api/v1/salon/barbers/{barberId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	if err := h.service.Delete(r.Context(), salonID, barberID); err != nil {
		switch {
		case errors.Is(err, barbers.ErrBarberNotFound), errors.Is(err, barbers.ErrAccessDenied):
			h.logger.Warn("DELETE /salon/barbers/%d - Not found: salon_id=%d", barberID, salonID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		default:
			h.logger.Error("DELETE /salon/barbers/%d - Failed to delete: salon_id=%d: %v", barberID, salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /salon/barbers/%d - Barber removed: salon_id=%d", barberID, salonID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
