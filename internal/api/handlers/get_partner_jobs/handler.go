package get_partner_jobs

import (
	"errors"
	"net/http"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/jobs"
	"github.com/gcare-app/GCare-BookingService/internal/service/jobs/models"
)

const msgUnauthorized = "authentication required"

type Handler struct {
	service JobsService
	logger  Logger
}

func NewHandler(service JobsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/partner/jobs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := middleware.PartnerID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.GetPartnerJobsRequest{PartnerID: partnerID}
	if raw := r.URL.Query().Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.GetPartnerJobs(r.Context(), req)
	if err != nil {
		if errors.Is(err, jobs.ErrInvalidInput) {
			h.logger.Warn("GET /partner/jobs - Invalid filter: partner_id=%d: %v", partnerID, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /partner/jobs - Failed to list jobs: partner_id=%d: %v", partnerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /partner/jobs - Listed %d jobs: partner_id=%d", len(result.Jobs), partnerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
