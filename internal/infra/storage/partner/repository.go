package partner

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

// uniqueViolationCode код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolationCode = "23505"

// DBExecutor интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var partnerColumns = []string{
	"id",
	"name",
	"email",
	"password_hash",
	"phone",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с партнёрами выездного сервиса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория партнёров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует нового партнёра
func (r *Repository) Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("partners").
		Columns(
			"name",
			"email",
			"password_hash",
			"phone",
		).
		Values(
			partner.Name,
			partner.Email,
			partner.PasswordHash,
			partner.Phone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&partner.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	partner.CreatedAt = createdAt.Time
	partner.UpdatedAt = updatedAt.Time

	return partner, nil
}

// GetByID получает партнёра по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail получает партнёра по email (для аутентификации)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Partner, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Partner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(partnerColumns...).
		From("partners").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var partner domain.Partner
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&partner.ID,
		&partner.Name,
		&partner.Email,
		&partner.PasswordHash,
		&partner.Phone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan partner: %v", ErrScanRow, err)
	}

	partner.CreatedAt = createdAt.Time
	partner.UpdatedAt = updatedAt.Time

	return &partner, nil
}

// isUniqueViolation проверяет нарушение уникального индекса
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
