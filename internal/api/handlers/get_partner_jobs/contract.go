package get_partner_jobs

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/jobs/models"
)

type JobsService interface {
	GetPartnerJobs(ctx context.Context, req *models.GetPartnerJobsRequest) (*models.JobListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
