package models

import (
	"errors"
	"time"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid job status")
)

// Request модели

// CreateJobRequest запрос на создание выездной работы
type CreateJobRequest struct {
	PartnerID       int64     `json:"partnerId"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerAddress string    `json:"customerAddress"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Services        []string  `json:"services"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	Payment         float64   `json:"payment"`
}

// GetPartnerJobsRequest запрос на получение работ партнёра
type GetPartnerJobsRequest struct {
	PartnerID int64   `json:"-"`
	Status    *string `json:"status,omitempty"`
}

// RejectJobRequest запрос на отклонение работы
type RejectJobRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPartnerJobsRequest) ToDomainFilter() (domain.PartnerJobsFilter, error) {
	filter := domain.PartnerJobsFilter{PartnerID: r.PartnerID}

	if r.Status != nil {
		status, err := ToDomainJobStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// JobResponse ответ с данными работы
type JobResponse struct {
	ID              int64    `json:"id"`
	PartnerID       int64    `json:"partnerId"`
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
	CustomerAddress string   `json:"customerAddress"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Services        []string `json:"services"`
	ScheduledAt     string   `json:"scheduledAt"` // ISO 8601
	Payment         float64  `json:"payment"`
	Status          string   `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobListResponse ответ со списком работ
type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

// Методы конвертации

// FromDomainJob конвертирует domain модель в DTO
func FromDomainJob(j *domain.Job) *JobResponse {
	if j == nil {
		return nil
	}

	resp := &JobResponse{
		ID:                 j.ID,
		PartnerID:          j.PartnerID,
		CustomerName:       j.CustomerName,
		CustomerPhone:      j.CustomerPhone,
		CustomerAddress:    j.CustomerAddress,
		Latitude:           j.Latitude,
		Longitude:          j.Longitude,
		Services:           j.Services,
		ScheduledAt:        j.ScheduledAt.Format(time.RFC3339),
		Payment:            j.Payment,
		Status:             string(j.Status),
		CancellationReason: j.CancellationReason,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}

	if j.CancelledAt != nil {
		cancelledStr := j.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainJobList конвертирует список domain моделей в DTO
func FromDomainJobList(jobs []*domain.Job) *JobListResponse {
	resp := &JobListResponse{
		Jobs: make([]JobResponse, 0, len(jobs)),
	}
	for _, job := range jobs {
		if dto := FromDomainJob(job); dto != nil {
			resp.Jobs = append(resp.Jobs, *dto)
		}
	}
	return resp
}

// ToDomainJobStatus конвертирует строку в domain.JobStatus с валидацией
func ToDomainJobStatus(status string) (domain.JobStatus, error) {
	s := domain.JobStatus(status)
	switch s {
	case domain.JobStatusPending,
		domain.JobStatusAccepted,
		domain.JobStatusInProgress,
		domain.JobStatusCompleted,
		domain.JobStatusCancelled:
		return s, nil
	}
	return "", ErrInvalidStatus
}
