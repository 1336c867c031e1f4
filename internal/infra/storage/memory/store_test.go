package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/shift"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
)

func TestTxManager_RollbackRestoresState(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	w, err := store.Workers().Create(ctx, &domain.Worker{Name: "Анна", Available: true})
	require.NoError(t, err)

	errBoom := errors.New("boom")
	err = store.TxManager().Do(ctx, func(txCtx context.Context) error {
		require.NoError(t, store.Workers().SetBlacklisted(txCtx, w.ID))
		_, err := store.Shifts().Create(txCtx, &domain.Shift{
			Start:  time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
			End:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			Status: domain.ShiftStatusStandby,
			Flag:   domain.ShiftFlagNormal,
		})
		require.NoError(t, err)
		require.NoError(t, store.Events().Create(txCtx, &domain.Event{ID: "e1"}))
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	got, err := store.Workers().GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, got.Blacklisted)

	shifts, err := store.Shifts().List(ctx, domain.ShiftsFilter{})
	require.NoError(t, err)
	assert.Empty(t, shifts)
	assert.Empty(t, store.Events().List(ctx))
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	tm := store.TxManager()

	err := tm.Do(ctx, func(txCtx context.Context) error {
		return tm.DoSerializable(txCtx, func(innerCtx context.Context) error {
			_, err := store.Workers().Create(innerCtx, &domain.Worker{Name: "Борис"})
			return err
		})
	})
	require.NoError(t, err)

	workers, err := store.Workers().List(ctx, domain.WorkersFilter{})
	require.NoError(t, err)
	assert.Len(t, workers, 1)
}

func TestTxManager_PanicRollsBack(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = store.TxManager().Do(ctx, func(txCtx context.Context) error {
			_, _ = store.Workers().Create(txCtx, &domain.Worker{Name: "Вера"})
			panic("unexpected")
		})
	})

	workers, err := store.Workers().List(ctx, domain.WorkersFilter{})
	require.NoError(t, err)
	assert.Empty(t, workers)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	w, err := store.Workers().Create(ctx, &domain.Worker{Name: "Анна"})
	require.NoError(t, err)

	got, err := store.Workers().GetByID(ctx, w.ID)
	require.NoError(t, err)
	got.Name = "изменено"

	again, err := store.Workers().GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Анна", again.Name)
}

func TestStore_NotFoundErrors(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Workers().GetByID(ctx, 1)
	assert.ErrorIs(t, err, workerRepo.ErrWorkerNotFound)

	err = store.Shifts().Update(ctx, &domain.Shift{ID: 1})
	assert.ErrorIs(t, err, shiftRepo.ErrShiftNotFound)
}

func TestShiftRepository_ListActiveOverlapping(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	create := func(workerID int64, from, to int, status domain.ShiftStatus) *domain.Shift {
		sh, err := store.Shifts().Create(ctx, &domain.Shift{
			Start:    base.Add(time.Duration(from) * time.Hour),
			End:      base.Add(time.Duration(to) * time.Hour),
			Status:   status,
			Flag:     domain.ShiftFlagNormal,
			WorkerID: ptr.Ptr(workerID),
		})
		require.NoError(t, err)
		return sh
	}

	overlapping := create(1, 9, 11, domain.ShiftStatusActive)
	create(1, 12, 14, domain.ShiftStatusActive)    // смежная
	create(1, 10, 11, domain.ShiftStatusCancelled) // не активна
	create(2, 10, 12, domain.ShiftStatusActive)    // другой работник

	shifts, err := store.Shifts().ListActiveOverlapping(ctx, domain.ActiveOverlapFilter{
		WindowStart: base.Add(10 * time.Hour),
		WindowEnd:   base.Add(12 * time.Hour),
		WorkerID:    ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, overlapping.ID, shifts[0].ID)

	shifts, err = store.Shifts().ListActiveOverlapping(ctx, domain.ActiveOverlapFilter{
		WindowStart:    base.Add(10 * time.Hour),
		WindowEnd:      base.Add(12 * time.Hour),
		WorkerID:       ptr.Ptr(int64(1)),
		ExcludeShiftID: ptr.Ptr(overlapping.ID),
	})
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestSuggestionRepository_MarkAcceptedOnce(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	sg, err := store.Suggestions().Create(ctx, &domain.RebookingSuggestion{ShiftID: 1, WorkerID: 2, Rank: 1, SuggestedAt: at})
	require.NoError(t, err)

	require.NoError(t, store.Suggestions().MarkAccepted(ctx, sg.ID, at))
	assert.Error(t, store.Suggestions().MarkAccepted(ctx, sg.ID, at))

	got, err := store.Suggestions().GetByID(ctx, sg.ID)
	require.NoError(t, err)
	assert.True(t, got.Accepted)
	require.NotNil(t, got.AcceptedAt)
}
