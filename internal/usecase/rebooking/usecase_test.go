package rebooking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-StaffingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-StaffingService/internal/service/availability"
	"github.com/m04kA/SMC-StaffingService/internal/service/blacklist"
	"github.com/m04kA/SMC-StaffingService/internal/service/reliability"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
	shiftModels "github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-StaffingService/internal/service/workerlock"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

type fixture struct {
	uc       *UseCase
	shifts   *shifts.Service
	registry *blacklist.Registry
	store    *memory.Store
}

func newFixture(t *testing.T, maxSuggestions int) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()
	publisher := eventbus.NewNoopPublisher(log)

	index := availability.NewIndex(store.Workers(), store.Shifts(), log)
	guard := workerlock.NewGuard(store.TxManager(), store.Locker())
	tracker := reliability.NewTracker(store.Workers(), store.TxManager(), log)

	return &fixture{
		uc: NewUseCase(store.Shifts(), store.Workers(), store.Suggestions(), store.Events(),
			index, guard, publisher, store.TxManager(), maxSuggestions, log),
		shifts: shifts.NewService(store.Shifts(), store.Workers(), store.Events(),
			index, tracker, guard, publisher, store.TxManager(), log),
		registry: blacklist.NewRegistry(store.Workers(), store.Blacklist(), store.Events(), store.TxManager(), log),
		store:    store,
	}
}

func (f *fixture) worker(t *testing.T, name string, standby bool, reliability float64) *domain.Worker {
	t.Helper()
	ctx := context.Background()
	w, err := f.store.Workers().Create(ctx, &domain.Worker{Name: name, Available: true, Standby: standby})
	require.NoError(t, err)
	w.Reliability = reliability
	require.NoError(t, f.store.Workers().UpdateReliability(ctx, w))
	return w
}

func (f *fixture) cancelledShift(t *testing.T, start, end time.Time, workerID *int64) *domain.Shift {
	t.Helper()
	s, err := f.store.Shifts().Create(context.Background(), &domain.Shift{
		Start:    start,
		End:      end,
		Status:   domain.ShiftStatusCancelled,
		Flag:     domain.ShiftFlagNormal,
		WorkerID: workerID,
	})
	require.NoError(t, err)
	return s
}

func workerIDs(suggestions []*domain.RebookingSuggestion) []int64 {
	ids := make([]int64, 0, len(suggestions))
	for _, s := range suggestions {
		ids = append(ids, s.WorkerID)
	}
	return ids
}

func TestUseCase_Suggest_StandbyFirst(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	original := f.worker(t, "Исходный", true, 100)
	w1 := f.worker(t, "Резерв", true, 80)
	w2 := f.worker(t, "Надёжный", false, 90)
	shift := f.cancelledShift(t, at(10), at(12), &original.ID)

	suggestions, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, []int64{w1.ID, w2.ID}, workerIDs(suggestions))
	assert.Equal(t, 1, suggestions[0].Rank)
	assert.Equal(t, 2, suggestions[1].Rank)
	for _, s := range suggestions {
		assert.False(t, s.Accepted)
	}
}

func TestUseCase_Suggest_ExcludesOriginalWorker(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	original := f.worker(t, "Исходный", true, 100)
	shift := f.cancelledShift(t, at(10), at(12), &original.ID)

	// после отмены исходный работник свободен, но замену себе не получает
	suggestions, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	other := f.worker(t, "Другой", false, 10)
	suggestions, err = f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{other.ID}, workerIDs(suggestions))
}

func TestUseCase_Suggest_TieBreakAndLimit(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	a := f.worker(t, "A", false, 50)
	b := f.worker(t, "B", false, 50)
	c := f.worker(t, "C", false, 70)
	f.worker(t, "D", false, 10)
	shift := f.cancelledShift(t, at(10), at(12), nil)

	suggestions, err := f.uc.Suggest(ctx, shift.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID, b.ID}, workerIDs(suggestions), "limit capped by max")

	two, err := f.uc.Suggest(ctx, shift.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID}, workerIDs(two))
}

func TestUseCase_Suggest_Idempotent(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	f.worker(t, "A", false, 30)
	f.worker(t, "B", true, 10)
	f.worker(t, "C", false, 60)
	shift := f.cancelledShift(t, at(8), at(16), nil)

	first, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)
	second, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, workerIDs(first), workerIDs(second))
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestUseCase_Suggest_ExcludesBusyAndBlacklisted(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	free := f.worker(t, "Свободный", false, 10)
	busy := f.worker(t, "Занятый", true, 100)
	banned := f.worker(t, "Заблокированный", true, 100)
	disabled := f.worker(t, "Отключенный", true, 100)

	_, err := f.shifts.Create(ctx, &shiftModels.CreateShiftRequest{Start: at(11), End: at(13), WorkerID: &busy.ID})
	require.NoError(t, err)
	_, _, err = f.registry.Blacklist(ctx, banned.ID, "неявки", nil)
	require.NoError(t, err)
	disabled.Available = false
	require.NoError(t, f.store.Workers().UpdateProfile(ctx, disabled))

	shift := f.cancelledShift(t, at(10), at(12), nil)

	suggestions, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{free.ID}, workerIDs(suggestions))
}

func TestUseCase_Suggest_Errors(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	_, err := f.uc.Suggest(ctx, 999, 0)
	assert.ErrorIs(t, err, ErrShiftNotFound)

	w := f.worker(t, "A", false, 0)
	active, err := f.shifts.Create(ctx, &shiftModels.CreateShiftRequest{Start: at(10), End: at(12), WorkerID: &w.ID})
	require.NoError(t, err)

	_, err = f.uc.Suggest(ctx, active.ID, 0)
	assert.ErrorIs(t, err, ErrShiftNotCancelled)

	// Единственный работник занят: пустой список без ошибки
	shift := f.cancelledShift(t, at(11), at(12), nil)
	suggestions, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestUseCase_Accept(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	original := f.worker(t, "Исходный", false, 0)
	w1 := f.worker(t, "Резерв", true, 80)
	f.worker(t, "Надёжный", false, 90)
	shift := f.cancelledShift(t, at(10), at(12), &original.ID)

	suggestions, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	resp, err := f.uc.Accept(ctx, suggestions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusActive, resp.Shift.Status)
	assert.Equal(t, w1.ID, *resp.Shift.WorkerID)
	assert.True(t, resp.Suggestion.Accepted)
	require.NotNil(t, resp.Event)
	assert.Equal(t, domain.EventShiftReassigned, resp.Event.Type)
	assert.Equal(t, original.ID, resp.Event.Payload["previousWorkerId"])
	assert.Equal(t, suggestions[0].ID, resp.Event.Payload["suggestionId"])

	_, err = f.uc.Accept(ctx, suggestions[0].ID)
	assert.ErrorIs(t, err, ErrAlreadyAccepted)

	_, err = f.uc.Accept(ctx, suggestions[1].ID)
	assert.ErrorIs(t, err, ErrShiftAlreadyRebooked)

	_, err = f.uc.Accept(ctx, 999)
	assert.ErrorIs(t, err, ErrSuggestionNotFound)

	accepted, err := f.uc.List(ctx, &ListRequest{ShiftID: &shift.ID, Accepted: ptr.Ptr(true)})
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, suggestions[0].ID, accepted[0].ID)
}

func TestUseCase_Accept_WorkerNoLongerAvailable(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	w := f.worker(t, "Кандидат", true, 50)
	shift := f.cancelledShift(t, at(10), at(12), nil)

	suggestions, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	// Кандидата успели занять на пересекающуюся смену
	_, err = f.shifts.Create(ctx, &shiftModels.CreateShiftRequest{Start: at(11), End: at(14), WorkerID: &w.ID})
	require.NoError(t, err)

	_, err = f.uc.Accept(ctx, suggestions[0].ID)
	assert.ErrorIs(t, err, ErrWorkerNoLongerAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.store.Shifts().GetByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusCancelled, got.Status)
	assert.Nil(t, got.WorkerID)

	sg, err := f.store.Suggestions().GetByID(ctx, suggestions[0].ID)
	require.NoError(t, err)
	assert.False(t, sg.Accepted)
	assert.Empty(t, f.store.Events().List(ctx))
}

func TestUseCase_Accept_BlacklistedAfterSuggestion(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	w := f.worker(t, "Кандидат", true, 50)
	shift := f.cancelledShift(t, at(10), at(12), nil)

	suggestions, err := f.uc.Suggest(ctx, shift.ID, 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	_, _, err = f.registry.Blacklist(ctx, w.ID, "неявки", nil)
	require.NoError(t, err)

	_, err = f.uc.Accept(ctx, suggestions[0].ID)
	assert.ErrorIs(t, err, ErrWorkerNoLongerAvailable)
}

// Принятие замены и параллельное назначение кандидата на пересекающуюся смену:
// ровно один запрос проходит, второй получает конфликт
func TestUseCase_Accept_ConcurrentAssignment(t *testing.T) {
	for i := 0; i < 20; i++ {
		f := newFixture(t, 5)
		ctx := context.Background()

		w1 := f.worker(t, "W1", true, 80)
		shift := f.cancelledShift(t, at(10), at(12), nil)
		other, err := f.shifts.Create(ctx, &shiftModels.CreateShiftRequest{Start: at(11), End: at(13)})
		require.NoError(t, err)

		suggestions, err := f.uc.Suggest(ctx, shift.ID, 0)
		require.NoError(t, err)
		require.Len(t, suggestions, 1)

		var (
			wg        sync.WaitGroup
			acceptErr error
			assignErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, acceptErr = f.uc.Accept(ctx, suggestions[0].ID)
		}()
		go func() {
			defer wg.Done()
			_, assignErr = f.shifts.Assign(ctx, other.ID, &shiftModels.AssignShiftRequest{WorkerID: w1.ID})
		}()
		wg.Wait()

		if acceptErr == nil {
			require.Error(t, assignErr)
			assert.ErrorIs(t, assignErr, shifts.ErrWorkerBusy)
		} else {
			require.NoError(t, assignErr)
			assert.ErrorIs(t, acceptErr, ErrWorkerNoLongerAvailable)
		}

		active, err := f.store.Shifts().List(ctx, domain.ShiftsFilter{
			Status:   ptr.Ptr(domain.ShiftStatusActive),
			WorkerID: &w1.ID,
		})
		require.NoError(t, err)
		assert.Len(t, active, 1)
	}
}
