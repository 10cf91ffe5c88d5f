package create_job

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/jobs/models"
)

type JobsService interface {
	Create(ctx context.Context, req *models.CreateJobRequest) (*models.JobResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
