package suggestion

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
	"rank",
	"suggested_at",
	"accepted",
	"accepted_at",
	"created_at",
}

// Repository репозиторий предложений замены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория предложений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет предложение (accepted всегда false)
func (r *Repository) Create(ctx context.Context, s *domain.RebookingSuggestion) (*domain.RebookingSuggestion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rebooking_suggestions").
		Columns("shift_id", "worker_id", "rank", "suggested_at").
		Values(s.ShiftID, s.WorkerID, s.Rank, s.SuggestedAt).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.Accepted = false
	s.AcceptedAt = nil
	s.CreatedAt = createdAt.Time

	return s, nil
}

// GetByID получает предложение по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RebookingSuggestion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("rebooking_suggestions").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSuggestion(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSuggestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan suggestion: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает предложения по фильтру
// Порядок: по смене, затем по рангу внутри выдачи
func (r *Repository) List(ctx context.Context, filter domain.SuggestionsFilter) ([]*domain.RebookingSuggestion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("rebooking_suggestions").
		OrderBy("shift_id ASC, suggested_at ASC, rank ASC, id ASC")

	if filter.ShiftID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shift_id": *filter.ShiftID})
	}
	if filter.Accepted != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"accepted": *filter.Accepted})
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

	result := make([]*domain.RebookingSuggestion, 0)
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// MarkAccepted помечает предложение принятым
// Условие accepted = false защищает от повторного принятия
func (r *Repository) MarkAccepted(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rebooking_suggestions").
		Set("accepted", true).
		Set("accepted_at", at).
		Where(squirrel.Eq{"id": id, "accepted": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkAccepted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkAccepted - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkAccepted - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSuggestionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSuggestion(row rowScanner) (*domain.RebookingSuggestion, error) {
	var s domain.RebookingSuggestion
	var acceptedAt, createdAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.ShiftID,
		&s.WorkerID,
		&s.Rank,
		&s.SuggestedAt,
		&s.Accepted,
		&acceptedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if acceptedAt.Valid {
		t := acceptedAt.Time
		s.AcceptedAt = &t
	}
	s.CreatedAt = createdAt.Time

	return &s, nil
}
