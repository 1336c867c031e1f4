package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType тип факта, который сервис отдаёт внешним потребителям
type EventType string

const (
	EventWorkerBlacklisted EventType = "worker_blacklisted"
	EventShiftReassigned   EventType = "shift_reassigned"
)

// Event факт, записанный в outbox в той же транзакции, что и изменение состояния
type Event struct {
	ID          string
	Type        EventType
	AggregateID int64 // worker_id для worker_blacklisted, shift_id для shift_reassigned
	Payload     map[string]interface{}
	OccurredAt  time.Time
}

// NewWorkerBlacklistedEvent создает факт о занесении работника в черный список
func NewWorkerBlacklistedEvent(entry *BlacklistEntry) *Event {
	payload := map[string]interface{}{
		"workerId":      entry.WorkerID,
		"entryId":       entry.ID,
		"reason":        entry.Reason,
		"blacklistedAt": entry.BlacklistedAt.UTC().Format(TimeFormat),
	}
	if entry.CancellationID != nil {
		payload["cancellationId"] = *entry.CancellationID
	}

	return &Event{
		ID:          uuid.NewString(),
		Type:        EventWorkerBlacklisted,
		AggregateID: entry.WorkerID,
		Payload:     payload,
		OccurredAt:  entry.BlacklistedAt,
	}
}

// NewShiftReassignedEvent создает факт о переназначении смены
// previousWorkerID и suggestionID опциональны
func NewShiftReassignedEvent(shift *Shift, previousWorkerID, suggestionID *int64, at time.Time) *Event {
	payload := map[string]interface{}{
		"shiftId": shift.ID,
		"start":   shift.Start.UTC().Format(TimeFormat),
		"end":     shift.End.UTC().Format(TimeFormat),
	}
	if shift.WorkerID != nil {
		payload["workerId"] = *shift.WorkerID
	}
	if previousWorkerID != nil {
		payload["previousWorkerId"] = *previousWorkerID
	}
	if suggestionID != nil {
		payload["suggestionId"] = *suggestionID
	}

	return &Event{
		ID:          uuid.NewString(),
		Type:        EventShiftReassigned,
		AggregateID: shift.ID,
		Payload:     payload,
		OccurredAt:  at,
	}
}
