package update_job_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/internal/api/middleware"
	"github.com/gcare-app/GCare-BookingService/internal/service/jobs"
	"github.com/gcare-app/GCare-BookingService/internal/service/jobs/models"
)

const (
	msgUnauthorized       = "authentication required"
	msgInvalidJobID       = "invalid job id"
	msgUnknownAction      = "unknown job action"
	msgInvalidRequestBody = "invalid request body"
	msgJobNotFound        = "job not found"
	msgInvalidTransition  = "job status transition is not allowed"
)

const (
	actionAccept   = "accept"
	actionReject   = "reject"
	actionStart    = "start"
	actionComplete = "complete"
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

// Handle PATCH /api/v1/partner/jobs/{jobId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := middleware.PartnerID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	jobID, err := strconv.ParseInt(vars["jobId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}
	action := vars["action"]

	var result *models.JobResponse
	switch action {
	case actionAccept:
		result, err = h.service.Accept(r.Context(), partnerID, jobID)
	case actionStart:
		result, err = h.service.Start(r.Context(), partnerID, jobID)
	case actionComplete:
		result, err = h.service.Complete(r.Context(), partnerID, jobID)
	case actionReject:
		var req models.RejectJobRequest
		if decodeErr := handlers.DecodeJSON(r, &req); decodeErr != nil {
			h.logger.Warn("PATCH /partner/jobs/{id}/reject - Invalid request body: %v", decodeErr)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		result, err = h.service.Reject(r.Context(), partnerID, jobID, &req)
	default:
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	if err != nil {
		switch {
		// Чужая работа неотличима от несуществующей
		case errors.Is(err, jobs.ErrJobNotFound), errors.Is(err, jobs.ErrAccessDenied):
			h.logger.Warn("PATCH /partner/jobs/{id}/%s - Job not found: partner_id=%d, job_id=%d",
				action, partnerID, jobID)
			handlers.RespondNotFound(w, msgJobNotFound)

		case errors.Is(err, jobs.ErrInvalidTransition):
			h.logger.Warn("PATCH /partner/jobs/{id}/%s - Invalid transition: partner_id=%d, job_id=%d",
				action, partnerID, jobID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, jobs.ErrInvalidInput):
			h.logger.Warn("PATCH /partner/jobs/{id}/%s - Invalid input: %v", action, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /partner/jobs/{id}/%s - Failed to update job: partner_id=%d, job_id=%d: %v",
				action, partnerID, jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /partner/jobs/{id}/%s - Job updated: partner_id=%d, job_id=%d, status=%s",
		action, partnerID, jobID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
