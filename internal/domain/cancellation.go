package domain

import "time"

// CancellationReason причина отмены смены
type CancellationReason string

const (
	ReasonNoShow           CancellationReason = "no_show"
	ReasonLateCancellation CancellationReason = "late_cancellation"
	ReasonUnexpected       CancellationReason = "unexpected"
	ReasonScheduleConflict CancellationReason = "schedule_conflict"
	ReasonOther            CancellationReason = "other"
)

// IsValid returns true if the reason is one of the known reasons
func (r CancellationReason) IsValid() bool {
	switch r {
	case ReasonNoShow, ReasonLateCancellation, ReasonUnexpected, ReasonScheduleConflict, ReasonOther:
		return true
	}
	return false
}

// AutoReplies returns true for low-ambiguity reasons that are acknowledged automatically
func (r CancellationReason) AutoReplies() bool {
	return r == ReasonNoShow || r == ReasonLateCancellation
}

// CancellationStatus статус обработки отмены
type CancellationStatus string

const (
	CancellationPending        CancellationStatus = "pending"
	CancellationAutoReplied    CancellationStatus = "auto_replied"
	CancellationManualResponse CancellationStatus = "manual_response"
	CancellationBlacklisted    CancellationStatus = "blacklisted"
)

// IsValid returns true if the status is one of the known statuses
func (s CancellationStatus) IsValid() bool {
	switch s {
	case CancellationPending, CancellationAutoReplied, CancellationManualResponse, CancellationBlacklisted:
		return true
	}
	return false
}

// stage порядковый номер этапа: статус может только расти
func (s CancellationStatus) stage() int {
	switch s {
	case CancellationPending:
		return 0
	case CancellationAutoReplied, CancellationManualResponse:
		return 1
	case CancellationBlacklisted:
		return 2
	}
	return -1
}

// Cancellation represents a cancelled shift and its handling state
type Cancellation struct {
	ID           int64
	ShiftID      int64
	WorkerID     int64
	Time         time.Time
	Reason       CancellationReason
	ReasonDetail *string
	Status       CancellationStatus
	ResponseNote *string // ответ оператора при ручной обработке

	AutoReplySent   bool
	FallbackHandled bool
	Blacklisted     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the cancellation was escalated to the blacklist
func (c *Cancellation) IsTerminal() bool {
	return c.Status == CancellationBlacklisted
}

// CanTransitionTo проверяет допустимость перехода
//
//	pending -> auto_replied | manual_response | blacklisted
//	auto_replied | manual_response -> blacklisted
func (c *Cancellation) CanTransitionTo(next CancellationStatus) bool {
	if !next.IsValid() || c.IsTerminal() {
		return false
	}
	if next == CancellationBlacklisted {
		return true
	}
	return c.Status.stage() < next.stage()
}

// CancellationsFilter фильтр списка отмен
type CancellationsFilter struct {
	Status   *CancellationStatus
	WorkerID *int64
	ShiftID  *int64
	From     *time.Time // время отмены >= From
	To       *time.Time // время отмены <= To
}
