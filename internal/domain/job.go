package domain

import (
	"fmt"
	"time"
)

// JobStatus represents the status of a partner job.
// "navigating"/"arrived" are transient client-side sub-states and are not persisted.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusAccepted   JobStatus = "accepted"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// jobTransitions таблица разрешённых переходов статусов работы партнёра.
// Та же форма жизненного цикла, что у Booking, но с собственным набором глаголов.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusPending:    {JobStatusAccepted, JobStatusCancelled},
	JobStatusAccepted:   {JobStatusInProgress, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

// CanTransitionJob returns true if a job may move from one status to another
func CanTransitionJob(from, to JobStatus) bool {
	for _, allowed := range jobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateJobTransition returns ErrInvalidTransition for a non-adjacent status request
func ValidateJobTransition(from, to JobStatus) error {
	if !CanTransitionJob(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Job represents a home-service request owned by a Partner.
// Jobs are not tied to a salon's time-block partition.
type Job struct {
	ID        int64
	PartnerID int64

	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Latitude        float64
	Longitude       float64

	Services    []string // запрошенные услуги, непустой список
	ScheduledAt time.Time
	Payment     float64

	Status JobStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no transition leaves the current status
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusCancelled
}

// PartnerJobsFilter фильтр для получения работ партнёра
type PartnerJobsFilter struct {
	PartnerID int64
	Status    *JobStatus
}
