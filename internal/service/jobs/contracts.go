package jobs

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

// JobRepository интерфейс репозитория работ партнёров
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	GetByPartnerWithFilter(ctx context.Context, filter domain.PartnerJobsFilter) ([]*domain.Job, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.JobStatus) error
	Cancel(ctx context.Context, id int64, from domain.JobStatus, reason string) error
}

// PartnerRepository интерфейс репозитория партнёров
type PartnerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
}

// TransitionNotifier хук уведомлений о переходах статусов
type TransitionNotifier interface {
	JobTransition(ctx context.Context, partnerID, jobID int64, from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
