package update_salon_settings

import (
	"errors"
	"net/http"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/settings"
	"github.com/gcare-app/GCare-BookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSalonNotFound      = "salon not found"
	msgUnauthorized       = "authentication required"
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

// Handle PUT /api/v1/salon/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salon/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrSalonNotFound):
			h.logger.Warn("PUT /salon/settings - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, settings.ErrInvalidInput), errors.Is(err, settings.ErrInvalidConfiguration):
			h.logger.Warn("PUT /salon/settings - Invalid configuration: salon_id=%d: %v", salonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /salon/settings - Failed to update settings: salon_id=%d: %v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salon/settings - Settings updated: salon_id=%d, mode=%s", salonID, result.Mode)
	handlers.RespondJSON(w, http.StatusOK, result)
}
