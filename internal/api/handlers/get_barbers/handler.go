package get_barbers

import (
	"net/http"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
)

const msgUnauthorized = "authentication required"

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

// Handle GET /api/v1/salon/barbers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.List(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /salon/barbers - Failed to list barbers: salon_id=%d: %v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salon/barbers - Listed %d barbers: salon_id=%d", len(result.Barbers), salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
