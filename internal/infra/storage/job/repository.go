package job

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	"github.com/gcare-app/GCare-BookingService/pkg/dbmetrics"
	"github.com/gcare-app/GCare-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var jobColumns = []string{
	"id",
	"partner_id",
	"customer_name",
	"customer_phone",
	"customer_address",
	"latitude",
	"longitude",
	"services",
	"scheduled_at",
	"payment",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с работами партнёров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория работ
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую работу
func (r *Repository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("jobs").
		Columns(
			"partner_id",
			"customer_name",
			"customer_phone",
			"customer_address",
			"latitude",
			"longitude",
			"services",
			"scheduled_at",
			"payment",
			"status",
		).
		Values(
			job.PartnerID,
			job.CustomerName,
			job.CustomerPhone,
			job.CustomerAddress,
			job.Latitude,
			job.Longitude,
			pq.Array(job.Services),
			job.ScheduledAt,
			job.Payment,
			job.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&job.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	job.CreatedAt = createdAt.Time
	job.UpdatedAt = updatedAt.Time

	return job, nil
}

// GetByID получает работу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	job, err := scanJob(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan job: %v", ErrScanRow, err)
	}

	return job, nil
}

// GetByPartnerWithFilter получает работы партнёра, опционально по статусу
func (r *Repository) GetByPartnerWithFilter(ctx context.Context, filter domain.PartnerJobsFilter) ([]*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"partner_id": filter.PartnerID}).
		OrderBy("scheduled_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPartnerWithFilter - scan row: %v", ErrScanRow, err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerWithFilter - rows error: %v", ErrScanRow, err)
	}

	return jobs, nil
}

// UpdateStatus условно переводит работу из статуса from в статус to.
// Возвращает ErrStatusConflict, если работа уже не в статусе from:
// два конкурентных перехода на одной работе не пройдут оба.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.JobStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("jobs").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		// Различаем "нет работы" и "статус уже изменился"
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}

	return nil
}

// Cancel отменяет работу с указанием причины, если она всё ещё в статусе from
func (r *Repository) Cancel(ctx context.Context, id int64, from domain.JobStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("jobs").
		Set("status", domain.JobStatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&job.ID,
		&job.PartnerID,
		&job.CustomerName,
		&job.CustomerPhone,
		&job.CustomerAddress,
		&job.Latitude,
		&job.Longitude,
		pq.Array(&job.Services),
		&job.ScheduledAt,
		&job.Payment,
		&job.Status,
		&job.CancellationReason,
		&job.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.CreatedAt = createdAt.Time
	job.UpdatedAt = updatedAt.Time

	return &job, nil
}
