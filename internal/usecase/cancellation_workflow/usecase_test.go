package cancellation_workflow

import (
	"context"
	"errors"
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
	"github.com/m04kA/SMC-StaffingService/internal/service/workerlock"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
}

type failingRebooking struct{}

func (failingRebooking) Suggest(context.Context, int64, int) ([]*domain.RebookingSuggestion, error) {
	return nil, errors.New("storage unavailable")
}

type fixture struct {
	uc    *UseCase
	index *availability.Index
	store *memory.Store
}

func newFixture(t *testing.T, policy EscalationPolicy) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()
	publisher := eventbus.NewNoopPublisher(log)

	index := availability.NewIndex(store.Workers(), store.Shifts(), log)
	guard := workerlock.NewGuard(store.TxManager(), store.Locker())
	tracker := reliability.NewTracker(store.Workers(), store.TxManager(), log)
	registry := blacklist.NewRegistry(store.Workers(), store.Blacklist(), store.Events(), store.TxManager(), log)
	rebook := rebooking.NewUseCase(store.Shifts(), store.Workers(), store.Suggestions(), store.Events(),
		index, guard, publisher, store.TxManager(), domain.DefaultMaxSuggestions, log)

	uc := NewUseCase(store.Cancellations(), store.Shifts(), store.Workers(), registry, tracker, rebook,
		publisher, store.TxManager(), policy, log)
	uc.timeProvider = fixedTime{now}

	return &fixture{uc: uc, index: index, store: store}
}

func (f *fixture) worker(t *testing.T, name string, standby bool) *domain.Worker {
	t.Helper()
	w, err := f.store.Workers().Create(context.Background(), &domain.Worker{Name: name, Available: true, Standby: standby})
	require.NoError(t, err)
	return w
}

func (f *fixture) activeShift(t *testing.T, workerID int64, start, end time.Time) *domain.Shift {
	t.Helper()
	s, err := f.store.Shifts().Create(context.Background(), &domain.Shift{
		Start:    start,
		End:      end,
		Status:   domain.ShiftStatusActive,
		Flag:     domain.ShiftFlagNormal,
		WorkerID: &workerID,
	})
	require.NoError(t, err)
	return s
}

func TestUseCase_Create_NoShowAutoReplies(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	ctx := context.Background()

	w := f.worker(t, "W", false)
	s := f.activeShift(t, w.ID, at(10), at(12))

	resp, err := f.uc.Create(ctx, &CreateRequest{ShiftID: s.ID, WorkerID: w.ID, Reason: domain.ReasonNoShow})
	require.NoError(t, err)

	c := resp.Cancellation
	assert.Equal(t, domain.CancellationAutoReplied, c.Status)
	assert.True(t, c.AutoReplySent)
	assert.False(t, c.Blacklisted)
	assert.Equal(t, now, c.Time)

	shift, err := f.store.Shifts().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusCancelled, shift.Status)

	worker, err := f.store.Workers().GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, worker.TotalAssignments)
	assert.Equal(t, 0, worker.CompletedAssignments)
	assert.Equal(t, 0.0, worker.Reliability)
}

func TestUseCase_Create_ManualReasonsStayPending(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	ctx := context.Background()

	for _, reason := range []domain.CancellationReason{
		domain.ReasonUnexpected, domain.ReasonScheduleConflict, domain.ReasonOther,
	} {
		w := f.worker(t, string(reason), false)
		s := f.activeShift(t, w.ID, at(10), at(12))

		resp, err := f.uc.Create(ctx, &CreateRequest{
			ShiftID:      s.ID,
			WorkerID:     w.ID,
			Reason:       reason,
			ReasonDetail: ptr.Ptr("  заболел  "),
			Time:         ptr.Ptr(at(9)),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CancellationPending, resp.Cancellation.Status)
		assert.False(t, resp.Cancellation.AutoReplySent)
		assert.Equal(t, "заболел", *resp.Cancellation.ReasonDetail)
		assert.Equal(t, at(9), resp.Cancellation.Time)

		worker, err := f.store.Workers().GetByID(ctx, w.ID)
		require.NoError(t, err)
		assert.Zero(t, worker.TotalAssignments, "only no-shows count against reliability")
	}
}

func TestUseCase_Create_TriggersRebooking(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	ctx := context.Background()

	w := f.worker(t, "W", false)
	standby := f.worker(t, "Резерв", true)
	regular := f.worker(t, "Обычный", false)
	s := f.activeShift(t, w.ID, at(10), at(12))

	resp, err := f.uc.Create(ctx, &CreateRequest{ShiftID: s.ID, WorkerID: w.ID, Reason: domain.ReasonLateCancellation})
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, standby.ID, resp.Suggestions[0].WorkerID)
	assert.Equal(t, regular.ID, resp.Suggestions[1].WorkerID)
}

func TestUseCase_Create_RebookingFailureKeepsCancellation(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	f.uc.rebooking = failingRebooking{}
	ctx := context.Background()

	w := f.worker(t, "W", false)
	s := f.activeShift(t, w.ID, at(10), at(12))

	resp, err := f.uc.Create(ctx, &CreateRequest{ShiftID: s.ID, WorkerID: w.ID, Reason: domain.ReasonOther})
	require.NoError(t, err)
	assert.Empty(t, resp.Suggestions)

	stored, err := f.store.Cancellations().GetByID(ctx, resp.Cancellation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CancellationPending, stored.Status)
}

func TestUseCase_Create_Errors(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	ctx := context.Background()

	w := f.worker(t, "W", false)
	other := f.worker(t, "Other", false)
	s := f.activeShift(t, w.ID, at(10), at(12))

	tests := []struct {
		name    string
		req     *CreateRequest
		wantErr error
	}{
		{"unknown reason", &CreateRequest{ShiftID: s.ID, WorkerID: w.ID, Reason: "sick"}, ErrInvalidInput},
		{"zero shift", &CreateRequest{WorkerID: w.ID, Reason: domain.ReasonOther}, ErrInvalidInput},
		{"shift not found", &CreateRequest{ShiftID: 999, WorkerID: w.ID, Reason: domain.ReasonOther}, ErrShiftNotFound},
		{"worker not found", &CreateRequest{ShiftID: s.ID, WorkerID: 999, Reason: domain.ReasonOther}, ErrWorkerNotFound},
		{"worker not assigned", &CreateRequest{ShiftID: s.ID, WorkerID: other.ID, Reason: domain.ReasonOther}, ErrWorkerNotAssigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := f.uc.Create(ctx, &CreateRequest{ShiftID: s.ID, WorkerID: w.ID, Reason: domain.ReasonOther})
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, &CreateRequest{ShiftID: s.ID, WorkerID: w.ID, Reason: domain.ReasonOther})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := f.uc.List(ctx, &ListRequest{ShiftID: &s.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1, "failed attempts leave no cancellation behind")
}

func TestUseCase_Create_EscalationRecommended(t *testing.T) {
	f := newFixture(t, EscalationPolicy{
		WindowDays: 30,
		Rules:      []domain.EscalationRule{{Operator: domain.OpGreaterOrEqual, Threshold: 2, Enabled: true}},
	})
	ctx := context.Background()

	w := f.worker(t, "W", false)
	first := f.activeShift(t, w.ID, at(10), at(12))
	second := f.activeShift(t, w.ID, at(14), at(16))

	resp, err := f.uc.Create(ctx, &CreateRequest{ShiftID: first.ID, WorkerID: w.ID, Reason: domain.ReasonUnexpected})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RecentCancellations)
	assert.False(t, resp.EscalationRecommended)

	resp, err = f.uc.Create(ctx, &CreateRequest{ShiftID: second.ID, WorkerID: w.ID, Reason: domain.ReasonUnexpected})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.RecentCancellations)
	assert.True(t, resp.EscalationRecommended)
	assert.Equal(t, domain.CancellationPending, resp.Cancellation.Status, "recommendation never escalates by itself")
}

func TestUseCase_Escalate_Pending(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	ctx := context.Background()

	w := f.worker(t, "W", false)
	s := f.activeShift(t, w.ID, at(10), at(12))

	created, err := f.uc.Create(ctx, &CreateRequest{ShiftID: s.ID, WorkerID: w.ID, Reason: domain.ReasonUnexpected})
	require.NoError(t, err)
	require.Equal(t, domain.CancellationPending, created.Cancellation.Status)

	resp, err := f.uc.Escalate(ctx, &EscalateRequest{CancellationID: created.Cancellation.ID})
	require.NoError(t, err)

	assert.Equal(t, domain.CancellationBlacklisted, resp.Cancellation.Status)
	assert.True(t, resp.Cancellation.Blacklisted)
	assert.Equal(t, "Multiple cancellations detected: unexpected", resp.Entry.Reason)
	assert.Equal(t, created.Cancellation.ID, *resp.Entry.CancellationID)
	assert.Equal(t, domain.EventWorkerBlacklisted, resp.Event.Type)

	worker, err := f.store.Workers().GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, worker.Blacklisted)

	history, err := f.store.Blacklist().ListByWorker(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	free, err := f.index.FindAvailable(ctx, at(10), at(12), true)
	require.NoError(t, err)
	for _, fw := range free {
		assert.NotEqual(t, w.ID, fw.ID)
	}

	_, err = f.uc.Escalate(ctx, &EscalateRequest{CancellationID: created.Cancellation.ID, Reason: ptr.Ptr("ещё раз")})
	assert.ErrorIs(t, err, ErrAlreadyBlacklisted)

	history, err = f.store.Blacklist().ListByWorker(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "repeated escalation does not append history")
}

func TestUseCase_Escalate_CustomReasonAndNotFound(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	ctx := context.Background()

	w := f.worker(t, "W", false)
	s := f.activeShift(t, w.ID, at(10), at(12))

	created, err := f.uc.Create(ctx, &CreateRequest{ShiftID: s.ID, WorkerID: w.ID, Reason: domain.ReasonNoShow})
	require.NoError(t, err)

	resp, err := f.uc.Escalate(ctx, &EscalateRequest{CancellationID: created.Cancellation.ID, Reason: ptr.Ptr("третий невыход")})
	require.NoError(t, err)
	assert.Equal(t, "третий невыход", resp.Entry.Reason)
	assert.True(t, resp.Cancellation.AutoReplySent, "escalation keeps earlier flags")

	_, err = f.uc.Escalate(ctx, &EscalateRequest{CancellationID: 999})
	assert.ErrorIs(t, err, ErrCancellationNotFound)
}

func TestUseCase_Respond(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	ctx := context.Background()

	w := f.worker(t, "W", false)
	pendingShift := f.activeShift(t, w.ID, at(10), at(12))
	autoShift := f.activeShift(t, w.ID, at(14), at(16))

	pending, err := f.uc.Create(ctx, &CreateRequest{ShiftID: pendingShift.ID, WorkerID: w.ID, Reason: domain.ReasonScheduleConflict})
	require.NoError(t, err)
	auto, err := f.uc.Create(ctx, &CreateRequest{ShiftID: autoShift.ID, WorkerID: w.ID, Reason: domain.ReasonLateCancellation})
	require.NoError(t, err)

	handled, err := f.uc.Respond(ctx, &RespondRequest{CancellationID: pending.Cancellation.ID, Note: ptr.Ptr("нашли замену")})
	require.NoError(t, err)
	assert.Equal(t, domain.CancellationManualResponse, handled.Status)
	assert.True(t, handled.FallbackHandled)
	assert.Equal(t, "нашли замену", *handled.ResponseNote)

	_, err = f.uc.Respond(ctx, &RespondRequest{CancellationID: pending.Cancellation.ID})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.uc.Respond(ctx, &RespondRequest{CancellationID: auto.Cancellation.ID})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.uc.Respond(ctx, &RespondRequest{CancellationID: 999})
	assert.ErrorIs(t, err, ErrCancellationNotFound)

	escalated, err := f.uc.Escalate(ctx, &EscalateRequest{CancellationID: pending.Cancellation.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.CancellationBlacklisted, escalated.Cancellation.Status)

	_, err = f.uc.Respond(ctx, &RespondRequest{CancellationID: pending.Cancellation.ID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUseCase_List(t *testing.T) {
	f := newFixture(t, EscalationPolicy{})
	ctx := context.Background()

	w1 := f.worker(t, "W1", false)
	w2 := f.worker(t, "W2", false)
	s1 := f.activeShift(t, w1.ID, at(10), at(12))
	s2 := f.activeShift(t, w2.ID, at(10), at(12))

	_, err := f.uc.Create(ctx, &CreateRequest{ShiftID: s1.ID, WorkerID: w1.ID, Reason: domain.ReasonNoShow, Time: ptr.Ptr(at(6))})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, &CreateRequest{ShiftID: s2.ID, WorkerID: w2.ID, Reason: domain.ReasonOther, Time: ptr.Ptr(at(7))})
	require.NoError(t, err)

	all, err := f.uc.List(ctx, &ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, w2.ID, all[0].WorkerID, "newest first")

	pending, err := f.uc.List(ctx, &ListRequest{Status: ptr.Ptr(domain.CancellationPending)})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, w2.ID, pending[0].WorkerID)

	early, err := f.uc.List(ctx, &ListRequest{To: ptr.Ptr(at(6))})
	require.NoError(t, err)
	require.Len(t, early, 1)
	assert.Equal(t, w1.ID, early[0].WorkerID)

	_, err = f.uc.List(ctx, &ListRequest{From: ptr.Ptr(at(7)), To: ptr.Ptr(at(6))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.List(ctx, &ListRequest{Status: ptr.Ptr(domain.CancellationStatus("closed"))})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
