package worker

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
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func workerRow(id int64, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(columns).
		AddRow(id, "Анна", "barista", nil, nil, nil, true, true, 80.0, 5, 4, false, now, now)
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO workers (name,role,location,email,phone,available,standby) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id",
	)).
		WithArgs("Анна", "barista", nil, nil, nil, true, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reliability", "total_assignments", "completed_assignments", "blacklisted", "created_at", "updated_at"}).
			AddRow(int64(1), 0.0, 0, 0, false, now, now))

	w, err := repo.Create(context.Background(), &domain.Worker{
		Name:      "Анна",
		Role:      ptr.Ptr("barista"),
		Available: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), w.ID)
	assert.Equal(t, 0.0, w.Reliability)
	assert.Equal(t, now, w.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("найден", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, role")).
			WithArgs(int64(7)).
			WillReturnRows(workerRow(7, now))

		w, err := repo.GetByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "Анна", w.Name)
		assert.True(t, w.Standby)
		assert.Equal(t, 80.0, w.Reliability)
		assert.Equal(t, 5, w.TotalAssignments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("не найден", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, role")).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 404)

		assert.ErrorIs(t, err, ErrWorkerNotFound)
	})

	t.Run("в транзакции блокирует строку", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM workers WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(7)).
			WillReturnRows(workerRow(7, now))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)

		_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 7)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM workers WHERE standby = $1 AND available = $2 ORDER BY id ASC")).
		WithArgs(true, true).
		WillReturnRows(workerRow(1, now).
			AddRow(int64(2), "Борис", nil, nil, nil, nil, true, true, 0.0, 0, 0, false, now, now))

	workers, err := repo.List(context.Background(), domain.WorkersFilter{
		Standby:   ptr.Ptr(true),
		Available: ptr.Ptr(true),
	})

	require.NoError(t, err)
	require.Len(t, workers, 2)
	assert.Equal(t, int64(2), workers[1].ID)
	assert.Nil(t, workers[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateReliability(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE workers SET reliability = $1, total_assignments = $2, completed_assignments = $3, updated_at = NOW() WHERE id = $4",
	)).
		WithArgs(75.0, 4, 3, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateReliability(context.Background(), &domain.Worker{
		ID:                   3,
		Reliability:          75.0,
		TotalAssignments:     4,
		CompletedAssignments: 3,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetBlacklisted_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE workers SET blacklisted = $1")).
		WithArgs(true, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetBlacklisted(context.Background(), 9)

	assert.ErrorIs(t, err, ErrWorkerNotFound)
}
