package shift

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO shifts (start_time,end_time,status,flag,worker_id,notes,outlet) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at, updated_at",
	)).
		WithArgs(start, end, domain.ShiftStatusActive, domain.ShiftFlagUrgent, ptr.Ptr(int64(5)), nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	created, err := repo.Create(context.Background(), &domain.Shift{
		Start:    start,
		End:      end,
		Status:   domain.ShiftStatusActive,
		Flag:     domain.ShiftFlagUrgent,
		WorkerID: ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM shifts WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestRepository_ListActiveOverlapping(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM shifts WHERE status = $1 AND start_time < $2 AND end_time > $3 AND worker_id = $4 AND id <> $5 ORDER BY start_time ASC, id ASC",
	)).
		WithArgs(domain.ShiftStatusActive, end, start, int64(5), int64(11)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(12), start.Add(time.Hour), end.Add(time.Hour), "active", "normal", int64(5), nil, nil, now, now))

	shifts, err := repo.ListActiveOverlapping(context.Background(), domain.ActiveOverlapFilter{
		WindowStart:    start,
		WindowEnd:      end,
		WorkerID:       ptr.Ptr(int64(5)),
		ExcludeShiftID: ptr.Ptr(int64(11)),
	})

	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, int64(12), shifts[0].ID)
	assert.Equal(t, domain.ShiftStatusActive, shifts[0].Status)
	require.NotNil(t, shifts[0].WorkerID)
	assert.Equal(t, int64(5), *shifts[0].WorkerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActiveOverlapping_AllWorkers(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("end_time > $3 AND worker_id IS NOT NULL ORDER BY")).
		WithArgs(domain.ShiftStatusActive, end, start).
		WillReturnRows(sqlmock.NewRows(columns))

	shifts, err := repo.ListActiveOverlapping(context.Background(), domain.ActiveOverlapFilter{
		WindowStart: start,
		WindowEnd:   end,
	})

	require.NoError(t, err)
	assert.Empty(t, shifts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Filters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	status := domain.ShiftStatusCancelled

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM shifts WHERE status = $1 AND worker_id = $2 AND start_time >= $3 AND end_time <= $4 ORDER BY start_time ASC, id ASC",
	)).
		WithArgs(status, int64(3), from, to).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.List(context.Background(), domain.ShiftsFilter{
		Status:   &status,
		WorkerID: ptr.Ptr(int64(3)),
		From:     &from,
		To:       &to,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE shifts SET status = $1, flag = $2, notes = $3, worker_id = $4, updated_at = NOW() WHERE id = $5",
	)).
		WithArgs(domain.ShiftStatusCancelled, domain.ShiftFlagNormal, nil, ptr.Ptr(int64(2)), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Shift{
		ID:       8,
		Status:   domain.ShiftStatusCancelled,
		Flag:     domain.ShiftFlagNormal,
		WorkerID: ptr.Ptr(int64(2)),
	})

	assert.ErrorIs(t, err, ErrShiftNotFound)
}
