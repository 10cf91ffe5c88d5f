package update_job_status

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/jobs/models"
)

type JobsService interface {
	Accept(ctx context.Context, partnerID, jobID int64) (*models.JobResponse, error)
	Start(ctx context.Context, partnerID, jobID int64) (*models.JobResponse, error)
	Complete(ctx context.Context, partnerID, jobID int64) (*models.JobResponse, error)
	Reject(ctx context.Context, partnerID, jobID int64, req *models.RejectJobRequest) (*models.JobResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
