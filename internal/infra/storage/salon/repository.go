package salon

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

var salonColumns = []string{
	"id",
	"owner_name",
	"salon_name",
	"email",
	"password_hash",
	"phone",
	"mode",
	"open_time",
	"close_time",
	"auto_confirm",
	"archived_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с салонами и их time blocks
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует новый салон
func (r *Repository) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salons").
		Columns(
			"owner_name",
			"salon_name",
			"email",
			"password_hash",
			"phone",
			"mode",
			"open_time",
			"close_time",
			"auto_confirm",
		).
		Values(
			salon.OwnerName,
			salon.SalonName,
			salon.Email,
			salon.PasswordHash,
			salon.Phone,
			salon.Mode,
			salon.OpenTime,
			salon.CloseTime,
			salon.AutoConfirm,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&salon.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	return salon, nil
}

// GetByID получает салон по ID вместе с его time blocks
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail получает салон по email (для аутентификации)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Salon, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var salon domain.Salon
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&salon.ID,
		&salon.OwnerName,
		&salon.SalonName,
		&salon.Email,
		&salon.PasswordHash,
		&salon.Phone,
		&salon.Mode,
		&salon.OpenTime,
		&salon.CloseTime,
		&salon.AutoConfirm,
		&salon.ArchivedAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan salon: %v", ErrScanRow, err)
	}

	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	blocks, err := r.getTimeBlocks(ctx, salon.ID)
	if err != nil {
		return nil, err
	}
	salon.TimeBlocks = blocks

	return &salon, nil
}

// UpdateSettings сохраняет режим приёма, рабочие часы и auto-confirm,
// полностью заменяя набор time blocks. Вызывается внутри транзакции
// (см. service/settings), чтобы замена блоков была атомарной.
func (r *Repository) UpdateSettings(ctx context.Context, salon *domain.Salon) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salons").
		Set("mode", salon.Mode).
		Set("open_time", salon.OpenTime).
		Set("close_time", salon.CloseTime).
		Set("auto_confirm", salon.AutoConfirm).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": salon.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSalonNotFound
	}

	return r.replaceTimeBlocks(ctx, salon)
}

// Archive мягко архивирует салон. Физическое удаление не поддерживается.
func (r *Repository) Archive(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salons").
		Set("archived_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"archived_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Archive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Archive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Archive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSalonNotFound
	}

	return nil
}

// getTimeBlocks загружает time blocks салона, упорядоченные по началу
func (r *Repository) getTimeBlocks(ctx context.Context, salonID int64) ([]domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"start_time",
		"end_time",
		"sub_mode",
	).
		From("time_blocks").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getTimeBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getTimeBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.TimeBlock, 0)
	for rows.Next() {
		var block domain.TimeBlock
		if err := rows.Scan(&block.ID, &block.SalonID, &block.StartTime, &block.EndTime, &block.SubMode); err != nil {
			return nil, fmt.Errorf("%w: getTimeBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getTimeBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// replaceTimeBlocks заменяет набор time blocks салона новым
func (r *Repository) replaceTimeBlocks(ctx context.Context, salon *domain.Salon) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_blocks").
		Where(squirrel.Eq{"salon_id": salon.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceTimeBlocks - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceTimeBlocks - execute delete: %v", ErrExecQuery, err)
	}

	if len(salon.TimeBlocks) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("time_blocks").
		Columns("salon_id", "start_time", "end_time", "sub_mode")

	for _, block := range salon.TimeBlocks {
		insertBuilder = insertBuilder.Values(salon.ID, block.StartTime, block.EndTime, block.SubMode)
	}

	query, args, err = insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceTimeBlocks - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: replaceTimeBlocks - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// Проставляем присвоенные ID в переданную модель
	for i := 0; rows.Next(); i++ {
		if err := rows.Scan(&salon.TimeBlocks[i].ID); err != nil {
			return fmt.Errorf("%w: replaceTimeBlocks - scan id: %v", ErrScanRow, err)
		}
		salon.TimeBlocks[i].SalonID = salon.ID
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: replaceTimeBlocks - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// isUniqueViolation проверяет нарушение уникального индекса
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
