package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"name",
	"role",
	"location",
	"email",
	"phone",
	"available",
	"standby",
	"reliability",
	"total_assignments",
	"completed_assignments",
	"blacklisted",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с работниками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория работников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового работника
// Счётчики надёжности и флаг черного списка всегда стартуют с нуля
func (r *Repository) Create(ctx context.Context, worker *domain.Worker) (*domain.Worker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("workers").
		Columns(
			"name",
			"role",
			"location",
			"email",
			"phone",
			"available",
			"standby",
		).
		Values(
			worker.Name,
			worker.Role,
			worker.Location,
			worker.Email,
			worker.Phone,
			worker.Available,
			worker.Standby,
		).
		Suffix("RETURNING id, reliability, total_assignments, completed_assignments, blacklisted, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&worker.ID,
		&worker.Reliability,
		&worker.TotalAssignments,
		&worker.CompletedAssignments,
		&worker.Blacklisted,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	worker.CreatedAt = createdAt.Time
	worker.UpdatedAt = updatedAt.Time

	return worker, nil
}

// GetByID получает работника по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("workers").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	worker, err := scanWorker(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan worker: %v", ErrScanRow, err)
	}

	return worker, nil
}

// List получает работников по фильтру, сортировка по ID
func (r *Repository) List(ctx context.Context, filter domain.WorkersFilter) ([]*domain.Worker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("workers").
		OrderBy("id ASC")

	if filter.Standby != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"standby": *filter.Standby})
	}
	if filter.Available != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"available": *filter.Available})
	}
	if filter.Blacklisted != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"blacklisted": *filter.Blacklisted})
	}
	if len(filter.IDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": filter.IDs})
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

	workers := make([]*domain.Worker, 0)
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		workers = append(workers, worker)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return workers, nil
}

// UpdateProfile обновляет анкетные данные и флаги доступности
// Надёжность и черный список здесь не меняются
func (r *Repository) UpdateProfile(ctx context.Context, worker *domain.Worker) error {
	query, args, err := psqlbuilder.Update("workers").
		Set("name", worker.Name).
		Set("role", worker.Role).
		Set("location", worker.Location).
		Set("email", worker.Email).
		Set("phone", worker.Phone).
		Set("available", worker.Available).
		Set("standby", worker.Standby).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": worker.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateProfile", query, args)
}

// UpdateReliability сохраняет счётчики смен и пересчитанную надёжность
func (r *Repository) UpdateReliability(ctx context.Context, worker *domain.Worker) error {
	query, args, err := psqlbuilder.Update("workers").
		Set("reliability", worker.Reliability).
		Set("total_assignments", worker.TotalAssignments).
		Set("completed_assignments", worker.CompletedAssignments).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": worker.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateReliability - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateReliability", query, args)
}

// SetBlacklisted ставит флаг черного списка (снимается только вручную)
func (r *Repository) SetBlacklisted(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("workers").
		Set("blacklisted", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetBlacklisted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "SetBlacklisted", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrWorkerNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorker(row rowScanner) (*domain.Worker, error) {
	var worker domain.Worker
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&worker.ID,
		&worker.Name,
		&worker.Role,
		&worker.Location,
		&worker.Email,
		&worker.Phone,
		&worker.Available,
		&worker.Standby,
		&worker.Reliability,
		&worker.TotalAssignments,
		&worker.CompletedAssignments,
		&worker.Blacklisted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	worker.CreatedAt = createdAt.Time
	worker.UpdatedAt = updatedAt.Time

	return &worker, nil
}
