package shift

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
	"start_time",
	"end_time",
	"status",
	"flag",
	"worker_id",
	"notes",
	"outlet",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со сменами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую смену
// Проверка пересечений выполняется вызывающей стороной под блокировкой работника
func (r *Repository) Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shifts").
		Columns(
			"start_time",
			"end_time",
			"status",
			"flag",
			"worker_id",
			"notes",
			"outlet",
		).
		Values(
			shift.Start,
			shift.End,
			shift.Status,
			shift.Flag,
			shift.WorkerID,
			shift.Notes,
			shift.Outlet,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&shift.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	shift.CreatedAt = createdAt.Time
	shift.UpdatedAt = updatedAt.Time

	return shift, nil
}

// GetByID получает смену по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("shifts").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	shift, err := scanShift(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan shift: %v", ErrScanRow, err)
	}

	return shift, nil
}

// List получает смены по фильтру
// From ограничивает начало смены снизу, To - конец смены сверху
func (r *Repository) List(ctx context.Context, filter domain.ShiftsFilter) ([]*domain.Shift, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("shifts").
		OrderBy("start_time ASC, id ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Flag != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"flag": *filter.Flag})
	}
	if filter.WorkerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"worker_id": *filter.WorkerID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"end_time": *filter.To})
	}

	return r.query(ctx, "List", selectBuilder)
}

// ListActiveOverlapping получает активные смены, пересекающие окно [WindowStart, WindowEnd)
// Полуоткрытый интервал: start_time < WindowEnd AND end_time > WindowStart
func (r *Repository) ListActiveOverlapping(ctx context.Context, filter domain.ActiveOverlapFilter) ([]*domain.Shift, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("shifts").
		Where(squirrel.Eq{"status": domain.ShiftStatusActive}).
		Where(squirrel.Lt{"start_time": filter.WindowEnd}).
		Where(squirrel.Gt{"end_time": filter.WindowStart}).
		OrderBy("start_time ASC, id ASC")

	if filter.WorkerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"worker_id": *filter.WorkerID})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"worker_id": nil})
	}
	if filter.ExcludeShiftID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeShiftID})
	}

	return r.query(ctx, "ListActiveOverlapping", selectBuilder)
}

// Update сохраняет изменяемые поля смены (статус, флаг, заметки, работник)
func (r *Repository) Update(ctx context.Context, shift *domain.Shift) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("shifts").
		Set("status", shift.Status).
		Set("flag", shift.Flag).
		Set("notes", shift.Notes).
		Set("worker_id", shift.WorkerID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": shift.ID}).
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
		return ErrShiftNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return shifts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShift(row rowScanner) (*domain.Shift, error) {
	var shift domain.Shift
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&shift.ID,
		&shift.Start,
		&shift.End,
		&shift.Status,
		&shift.Flag,
		&shift.WorkerID,
		&shift.Notes,
		&shift.Outlet,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	shift.CreatedAt = createdAt.Time
	shift.UpdatedAt = updatedAt.Time

	return &shift, nil
}
