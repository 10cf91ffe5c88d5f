package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	jobRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/job"
	partnerRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/partner"
	"github.com/gcare-app/GCare-BookingService/internal/service/jobs/models"
)

// Service сервис выездных работ партнёров.
// У работ тот же жизненный цикл, что у бронирований салона, но они
// не участвуют в разбиении дня на time blocks и не занимают слоты.
type Service struct {
	jobRepo     JobRepository
	partnerRepo PartnerRepository
	notifier    TransitionNotifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса работ
func NewService(
	jobRepo JobRepository,
	partnerRepo PartnerRepository,
	notifier TransitionNotifier,
	logger Logger,
) *Service {
	return &Service{
		jobRepo:     jobRepo,
		partnerRepo: partnerRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create создает новую выездную работу для партнёра.
// Работа создаётся в статусе pending и ждёт подтверждения партнёром.
func (s *Service) Create(ctx context.Context, req *models.CreateJobRequest) (*models.JobResponse, error) {
	s.logger.Info("Create: creating job for partner=%d customer=%s", req.PartnerID, req.CustomerName)

	if err := validateCreateJob(req); err != nil {
		s.logger.Warn("Create: invalid job for partner=%d: %v", req.PartnerID, err)
		return nil, err
	}

	if _, err := s.partnerRepo.GetByID(ctx, req.PartnerID); err != nil {
		if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
			s.logger.Warn("Create: partner=%d not found", req.PartnerID)
			return nil, ErrPartnerNotFound
		}
		s.logger.Error("Create: partner lookup for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: Create - partner lookup: %v", ErrInternal, err)
	}

	job := &domain.Job{
		PartnerID:       req.PartnerID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Services:        req.Services,
		ScheduledAt:     req.ScheduledAt,
		Payment:         req.Payment,
		Status:          domain.JobStatusPending,
	}

	created, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		s.logger.Error("Create: repository error for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created job id=%d for partner=%d", created.ID, req.PartnerID)
	return models.FromDomainJob(created), nil
}

// GetPartnerJobs получает работы партнёра, опционально фильтруя по статусу
func (s *Service) GetPartnerJobs(ctx context.Context, req *models.GetPartnerJobsRequest) (*models.JobListResponse, error) {
	s.logger.Info("GetPartnerJobs: fetching jobs for partner=%d", req.PartnerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPartnerJobs: invalid filter for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	jobs, err := s.jobRepo.GetByPartnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPartnerJobs: repository error for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: GetPartnerJobs - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPartnerJobs: fetched %d jobs for partner=%d", len(jobs), req.PartnerID)
	return models.FromDomainJobList(jobs), nil
}

// Accept подтверждает работу: pending -> accepted
func (s *Service) Accept(ctx context.Context, partnerID, jobID int64) (*models.JobResponse, error) {
	return s.transition(ctx, partnerID, jobID, domain.JobStatusAccepted)
}

// Start начинает выполнение работы: accepted -> in-progress
func (s *Service) Start(ctx context.Context, partnerID, jobID int64) (*models.JobResponse, error) {
	return s.transition(ctx, partnerID, jobID, domain.JobStatusInProgress)
}

// Complete завершает работу: in-progress -> completed
func (s *Service) Complete(ctx context.Context, partnerID, jobID int64) (*models.JobResponse, error) {
	return s.transition(ctx, partnerID, jobID, domain.JobStatusCompleted)
}

// Reject отклоняет работу с указанием причины: pending -> cancelled.
// Принятая работа также может быть отменена до начала выполнения.
func (s *Service) Reject(ctx context.Context, partnerID, jobID int64, req *models.RejectJobRequest) (*models.JobResponse, error) {
	s.logger.Info("Reject: rejecting job id=%d for partner=%d", jobID, partnerID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	job, err := s.getOwnedJob(ctx, partnerID, jobID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateJobTransition(job.Status, domain.JobStatusCancelled); err != nil {
		s.logger.Warn("Reject: job id=%d invalid transition %s -> cancelled", jobID, job.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, domain.JobStatusCancelled)
	}

	if err := s.jobRepo.Cancel(ctx, jobID, job.Status, req.Reason); err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		if errors.Is(err, jobRepo.ErrStatusConflict) {
			s.logger.Warn("Reject: job id=%d status changed concurrently", jobID)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, domain.JobStatusCancelled)
		}
		s.logger.Error("Reject: repository error for job id=%d: %v", jobID, err)
		return nil, fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.notifier.JobTransition(ctx, partnerID, jobID, string(job.Status), string(domain.JobStatusCancelled))
	s.logger.Info("Reject: job id=%d rejected", jobID)

	updated, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		s.logger.Error("Reject: reload job id=%d: %v", jobID, err)
		return nil, fmt.Errorf("%w: Reject - reload job: %v", ErrInternal, err)
	}
	return models.FromDomainJob(updated), nil
}

// transition выполняет переход статуса работы
func (s *Service) transition(ctx context.Context, partnerID, jobID int64, to domain.JobStatus) (*models.JobResponse, error) {
	s.logger.Info("transition: job id=%d for partner=%d -> %s", jobID, partnerID, to)

	job, err := s.getOwnedJob(ctx, partnerID, jobID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateJobTransition(job.Status, to); err != nil {
		s.logger.Warn("transition: job id=%d invalid transition %s -> %s", jobID, job.Status, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, to)
	}

	// Условная запись: переход проходит, только если статус
	// не изменился между чтением и записью
	if err := s.jobRepo.UpdateStatus(ctx, jobID, job.Status, to); err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		if errors.Is(err, jobRepo.ErrStatusConflict) {
			s.logger.Warn("transition: job id=%d status changed concurrently", jobID)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, to)
		}
		s.logger.Error("transition: job id=%d -> %s failed: %v", jobID, to, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	s.notifier.JobTransition(ctx, partnerID, jobID, string(job.Status), string(to))
	s.logger.Info("transition: job id=%d moved %s -> %s", jobID, job.Status, to)

	job.Status = to
	return models.FromDomainJob(job), nil
}

// getOwnedJob загружает работу и проверяет принадлежность партнёру
func (s *Service) getOwnedJob(ctx context.Context, partnerID, jobID int64) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("getOwnedJob: job id=%d not found", jobID)
			return nil, ErrJobNotFound
		}
		s.logger.Error("getOwnedJob: repository error for job id=%d: %v", jobID, err)
		return nil, fmt.Errorf("%w: getOwnedJob - repository error: %v", ErrInternal, err)
	}

	if job.PartnerID != partnerID {
		s.logger.Warn("getOwnedJob: partner=%d does not own job id=%d", partnerID, jobID)
		return nil, ErrAccessDenied
	}

	return job, nil
}

func validateCreateJob(req *models.CreateJobRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerAddress) == "" {
		return fmt.Errorf("%w: customerAddress is required", ErrInvalidInput)
	}
	if len(req.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	for _, service := range req.Services {
		if strings.TrimSpace(service) == "" {
			return fmt.Errorf("%w: services must not be empty", ErrInvalidInput)
		}
	}
	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}
	if req.Payment < 0 {
		return fmt.Errorf("%w: payment must not be negative", ErrInvalidInput)
	}
	return nil
}
