package archive_salon

import (
	"errors"
	"net/http"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/settings"
)

const (
	msgUnauthorized  = "authentication required"
	msgSalonNotFound = "salon not found"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/salon/account
// Архивация мягкая: вход блокируется, история бронирований сохраняется.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Archive(r.Context(), salonID); err != nil {
		if errors.Is(err, settings.ErrSalonNotFound) {
			h.logger.Warn("DELETE /salon/account - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)
			return
		}
		h.logger.Error("DELETE /salon/account - Failed to archive salon: salon_id=%d: %v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /salon/account - Salon archived: salon_id=%d", salonID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}
