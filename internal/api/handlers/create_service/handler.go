package create_service

import (
	"errors"
	"net/http"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/catalog"
	"github.com/gcare-app/GCare-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUnauthorized       = "authentication required"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salon/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salon/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /salon/services - Invalid input: salon_id=%d: %v", salonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salon/services - Failed to create service: salon_id=%d: %v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salon/services - Service created: service_id=%d, salon_id=%d", result.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
