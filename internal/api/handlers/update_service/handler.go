package update_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/catalog"
	"github.com/gcare-app/GCare-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidServiceID   = "invalid service id"
	msgServiceNotFound    = "service not found"
	msgServiceArchived    = "service is archived"
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

// Handle PUT /api/v1/salon/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.SalonID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salon/services/%d - Invalid request body: %v", serviceID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID
	req.ServiceID = serviceID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound), errors.Is(err, catalog.ErrAccessDenied):
			// Чужая услуга неотличима от несуществующей
			h.logger.Warn("PUT /salon/services/%d - Not found: salon_id=%d", serviceID, salonID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrServiceArchived):
			h.logger.Warn("PUT /salon/services/%d - Archived: salon_id=%d", serviceID, salonID)
			handlers.RespondConflict(w, msgServiceArchived)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /salon/services/%d - Invalid input: %v", serviceID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /salon/services/%d - Failed to update: salon_id=%d: %v", serviceID, salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salon/services/%d - Service updated: salon_id=%d, version=%d",
		serviceID, salonID, result.Version)
	handlers.RespondJSON(w, http.StatusOK, result)
}
