package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	jobRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/job"
	partnerRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/partner"
	"github.com/gcare-app/GCare-BookingService/internal/service/jobs/models"
)

// --- фейки ---

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeJobRepo struct {
	// afterGet срабатывает один раз после чтения - имитирует параллельный
	// переход, попавший между чтением и условной записью
	afterGet func()

	jobs   map[int64]*domain.Job
	nextID int64
}

func newFakeJobRepo(jobs ...*domain.Job) *fakeJobRepo {
	repo := &fakeJobRepo{jobs: make(map[int64]*domain.Job), nextID: 100}
	for _, job := range jobs {
		repo.jobs[job.ID] = job
	}
	return repo
}

func (f *fakeJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	stored := *job
	f.nextID++
	stored.ID = f.nextID
	f.jobs[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, jobRepo.ErrJobNotFound
	}
	copied := *job
	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil
		hook()
	}
	return &copied, nil
}

func (f *fakeJobRepo) GetByPartnerWithFilter(_ context.Context, filter domain.PartnerJobsFilter) ([]*domain.Job, error) {
	result := make([]*domain.Job, 0)
	for _, job := range f.jobs {
		if job.PartnerID != filter.PartnerID {
			continue
		}
		if filter.Status != nil && job.Status != *filter.Status {
			continue
		}
		result = append(result, job)
	}
	return result, nil
}

func (f *fakeJobRepo) UpdateStatus(_ context.Context, id int64, from, to domain.JobStatus) error {
	job, ok := f.jobs[id]
	if !ok {
		return jobRepo.ErrJobNotFound
	}
	if job.Status != from {
		return jobRepo.ErrStatusConflict
	}
	job.Status = to
	return nil
}

func (f *fakeJobRepo) Cancel(_ context.Context, id int64, from domain.JobStatus, reason string) error {
	job, ok := f.jobs[id]
	if !ok {
		return jobRepo.ErrJobNotFound
	}
	if job.Status != from {
		return jobRepo.ErrStatusConflict
	}
	now := time.Now()
	job.Status = domain.JobStatusCancelled
	job.CancellationReason = &reason
	job.CancelledAt = &now
	return nil
}

type fakePartnerRepo struct {
	partner *domain.Partner
}

func (f *fakePartnerRepo) GetByID(_ context.Context, id int64) (*domain.Partner, error) {
	if f.partner == nil || f.partner.ID != id {
		return nil, partnerRepo.ErrPartnerNotFound
	}
	return f.partner, nil
}

type recordNotifier struct {
	transitions []string
}

func (n *recordNotifier) JobTransition(_ context.Context, _, _ int64, from, to string) {
	n.transitions = append(n.transitions, from+"->"+to)
}

// --- фикстуры ---

func pendingJob(id int64) *domain.Job {
	return &domain.Job{
		ID:              id,
		PartnerID:       3,
		CustomerName:    "Carol",
		CustomerPhone:   "+15550002",
		CustomerAddress: "12 River Street",
		Services:        []string{"plumbing"},
		ScheduledAt:     time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Payment:         80,
		Status:          domain.JobStatusPending,
	}
}

func createJobRequest() *models.CreateJobRequest {
	return &models.CreateJobRequest{
		PartnerID:       3,
		CustomerName:    "Carol",
		CustomerPhone:   "+15550002",
		CustomerAddress: "12 River Street",
		Latitude:        40.1,
		Longitude:       -74.2,
		Services:        []string{"plumbing", "inspection"},
		ScheduledAt:     time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Payment:         80,
	}
}

func newTestService(repo *fakeJobRepo) (*Service, *recordNotifier) {
	partners := &fakePartnerRepo{partner: &domain.Partner{ID: 3, Name: "FixIt"}}
	notifier := &recordNotifier{}
	return NewService(repo, partners, notifier, stubLogger{}), notifier
}

// --- тесты ---

func TestCreateJob(t *testing.T) {
	svc, _ := newTestService(newFakeJobRepo())

	resp, err := svc.Create(context.Background(), createJobRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.JobStatusPending), resp.Status)
	assert.Equal(t, []string{"plumbing", "inspection"}, resp.Services)
	assert.Equal(t, 80.0, resp.Payment)
}

func TestCreateJobForUnknownPartner(t *testing.T) {
	svc, _ := newTestService(newFakeJobRepo())

	req := createJobRequest()
	req.PartnerID = 99
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestCreateJobValidation(t *testing.T) {
	svc, _ := newTestService(newFakeJobRepo())

	tests := []struct {
		name   string
		mutate func(req *models.CreateJobRequest)
	}{
		{"missing name", func(r *models.CreateJobRequest) { r.CustomerName = " " }},
		{"missing address", func(r *models.CreateJobRequest) { r.CustomerAddress = "" }},
		{"no services", func(r *models.CreateJobRequest) { r.Services = nil }},
		{"blank service", func(r *models.CreateJobRequest) { r.Services = []string{"plumbing", " "} }},
		{"zero scheduledAt", func(r *models.CreateJobRequest) { r.ScheduledAt = time.Time{} }},
		{"negative payment", func(r *models.CreateJobRequest) { r.Payment = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createJobRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestJobLifecycle(t *testing.T) {
	repo := newFakeJobRepo(pendingJob(42))
	svc, notifier := newTestService(repo)

	resp, err := svc.Accept(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.JobStatusAccepted), resp.Status)

	resp, err = svc.Start(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.JobStatusInProgress), resp.Status)

	resp, err = svc.Complete(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.JobStatusCompleted), resp.Status)

	assert.Equal(t, []string{
		"pending->accepted",
		"accepted->in-progress",
		"in-progress->completed",
	}, notifier.transitions)
}

func TestJobInvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		status domain.JobStatus
		action func(svc *Service) error
	}{
		{"start pending", domain.JobStatusPending, func(svc *Service) error {
			_, err := svc.Start(context.Background(), 3, 42)
			return err
		}},
		{"complete accepted", domain.JobStatusAccepted, func(svc *Service) error {
			_, err := svc.Complete(context.Background(), 3, 42)
			return err
		}},
		{"accept completed", domain.JobStatusCompleted, func(svc *Service) error {
			_, err := svc.Accept(context.Background(), 3, 42)
			return err
		}},
		{"reject in-progress", domain.JobStatusInProgress, func(svc *Service) error {
			_, err := svc.Reject(context.Background(), 3, 42, &models.RejectJobRequest{})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := pendingJob(42)
			job.Status = tt.status
			svc, _ := newTestService(newFakeJobRepo(job))

			assert.ErrorIs(t, tt.action(svc), ErrInvalidTransition)
		})
	}
}

func TestRejectJob(t *testing.T) {
	repo := newFakeJobRepo(pendingJob(42))
	svc, notifier := newTestService(repo)

	resp, err := svc.Reject(context.Background(), 3, 42, &models.RejectJobRequest{
		Reason: "outside service area",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.JobStatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "outside service area", *resp.CancellationReason)
	assert.Equal(t, []string{"pending->cancelled"}, notifier.transitions)
}

func TestAcceptLosesRaceWithReject(t *testing.T) {
	// Параллельный reject лег между чтением и записью: условная запись
	// не проходит, отменённая работа не переводится в accepted
	repo := newFakeJobRepo(pendingJob(42))
	repo.afterGet = func() {
		repo.jobs[42].Status = domain.JobStatusCancelled
	}
	svc, notifier := newTestService(repo)

	_, err := svc.Accept(context.Background(), 3, 42)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.JobStatusCancelled, repo.jobs[42].Status)
	assert.Empty(t, notifier.transitions)
}

func TestRejectLosesRaceWithAccept(t *testing.T) {
	repo := newFakeJobRepo(pendingJob(42))
	repo.afterGet = func() {
		repo.jobs[42].Status = domain.JobStatusAccepted
	}
	svc, notifier := newTestService(repo)

	_, err := svc.Reject(context.Background(), 3, 42, &models.RejectJobRequest{
		Reason: "double booked",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.JobStatusAccepted, repo.jobs[42].Status)
	assert.Empty(t, notifier.transitions)
}

func TestForeignJobIsDenied(t *testing.T) {
	svc, _ := newTestService(newFakeJobRepo(pendingJob(42)))

	_, err := svc.Accept(context.Background(), 4, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Accept(context.Background(), 3, 999)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestGetPartnerJobsFilterByStatus(t *testing.T) {
	pending := pendingJob(42)
	done := pendingJob(43)
	done.Status = domain.JobStatusCompleted
	svc, _ := newTestService(newFakeJobRepo(pending, done))

	status := "completed"
	resp, err := svc.GetPartnerJobs(context.Background(), &models.GetPartnerJobsRequest{
		PartnerID: 3,
		Status:    &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, int64(43), resp.Jobs[0].ID)

	bad := "unknown"
	_, err = svc.GetPartnerJobs(context.Background(), &models.GetPartnerJobsRequest{
		PartnerID: 3,
		Status:    &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
