package cancellation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"shift_id",
	"worker_id",
	"cancellation_time",
	"reason",
	"reason_detail",
	"status",
	"response_note",
	"auto_reply_sent",
	"fallback_handled",
	"blacklisted",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с отменами смен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отмен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись об отмене
func (r *Repository) Create(ctx context.Context, c *domain.Cancellation) (*domain.Cancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellations").
		Columns(
			"shift_id",
			"worker_id",
			"cancellation_time",
			"reason",
			"reason_detail",
			"status",
			"auto_reply_sent",
			"fallback_handled",
			"blacklisted",
		).
		Values(
			c.ShiftID,
			c.WorkerID,
			c.Time,
			c.Reason,
			c.ReasonDetail,
			c.Status,
			c.AutoReplySent,
			c.FallbackHandled,
			c.Blacklisted,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает отмену по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Cancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("cancellations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCancellation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCancellationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan cancellation: %v", ErrScanRow, err)
	}

	return c, nil
}

// List получает отмены по фильтру, сначала новые
func (r *Repository) List(ctx context.Context, filter domain.CancellationsFilter) ([]*domain.Cancellation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("cancellations").
		OrderBy("cancellation_time DESC, id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.WorkerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"worker_id": *filter.WorkerID})
	}
	if filter.ShiftID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shift_id": *filter.ShiftID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"cancellation_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"cancellation_time": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Cancellation, 0)
	for rows.Next() {
		c, err := scanCancellation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CountByWorkerSince считает отмены работника начиная с момента since
// Используется правилами рекомендации эскалации
func (r *Repository) CountByWorkerSince(ctx context.Context, workerID int64, since time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("cancellations").
		Where(squirrel.Eq{"worker_id": workerID}).
		Where(squirrel.GtOrEq{"cancellation_time": since}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByWorkerSince - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByWorkerSince - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update сохраняет состояние обработки отмены
// Причина, время и ссылки на смену/работника неизменяемы
func (r *Repository) Update(ctx context.Context, c *domain.Cancellation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cancellations").
		Set("status", c.Status).
		Set("response_note", c.ResponseNote).
		Set("auto_reply_sent", c.AutoReplySent).
		Set("fallback_handled", c.FallbackHandled).
		Set("blacklisted", c.Blacklisted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCancellationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCancellation(row rowScanner) (*domain.Cancellation, error) {
	var c domain.Cancellation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.ShiftID,
		&c.WorkerID,
		&c.Time,
		&c.Reason,
		&c.ReasonDetail,
		&c.Status,
		&c.ResponseNote,
		&c.AutoReplySent,
		&c.FallbackHandled,
		&c.Blacklisted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
