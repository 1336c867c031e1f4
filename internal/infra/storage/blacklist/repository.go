package blacklist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/psqlbuilder"
)

// Repository журнал черного списка
// Записи только добавляются: обновления и удаления не поддерживаются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черного списка
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, entry *domain.BlacklistEntry) (*domain.BlacklistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blacklist_entries").
		Columns("worker_id", "reason", "cancellation_id", "blacklisted_at").
		Values(entry.WorkerID, entry.Reason, entry.CancellationID, entry.BlacklistedAt).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// ListByWorker возвращает историю работника в хронологическом порядке
func (r *Repository) ListByWorker(ctx context.Context, workerID int64) ([]*domain.BlacklistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "worker_id", "reason", "cancellation_id", "blacklisted_at", "created_at").
		From("blacklist_entries").
		Where(squirrel.Eq{"worker_id": workerID}).
		OrderBy("blacklisted_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorker - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorker - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.BlacklistEntry, 0)
	for rows.Next() {
		var entry domain.BlacklistEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.WorkerID,
			&entry.Reason,
			&entry.CancellationID,
			&entry.BlacklistedAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByWorker - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByWorker - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
