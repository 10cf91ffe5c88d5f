package create_job

import (
	"errors"
	"net/http"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/service/jobs"
	"github.com/gcare-app/GCare-BookingService/internal/service/jobs/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgPartnerNotFound    = "partner not found"
)

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

// Handle POST /api/v1/jobs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /jobs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrPartnerNotFound):
			h.logger.Warn("POST /jobs - Partner not found: partner_id=%d", req.PartnerID)
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, jobs.ErrInvalidInput):
			h.logger.Warn("POST /jobs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /jobs - Failed to create job: partner_id=%d: %v", req.PartnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /jobs - Job created: job_id=%d, partner_id=%d", result.ID, req.PartnerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
