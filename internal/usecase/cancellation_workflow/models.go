package cancellation_workflow

import (
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// EscalationPolicy параметры рекомендации эскалации
type EscalationPolicy struct {
	WindowDays int                     // окно подсчёта отмен работника
	Rules      []domain.EscalationRule // достаточно одного совпавшего правила
}

// CreateRequest запрос на создание отмены
type CreateRequest struct {
	ShiftID      int64
	WorkerID     int64
	Reason       domain.CancellationReason
	ReasonDetail *string
	Time         *time.Time // по умолчанию текущее время
}

// CreateResponse созданная отмена и подобранные замены
type CreateResponse struct {
	Cancellation          *domain.Cancellation
	Suggestions           []*domain.RebookingSuggestion // пусто, если кандидатов нет или подбор не удался
	RecentCancellations   int                           // отмен работника за окно, включая эту
	EscalationRecommended bool
}

// EscalateRequest запрос на эскалацию в черный список
type EscalateRequest struct {
	CancellationID int64
	Reason         *string // по умолчанию "Multiple cancellations detected: <reason>"
}

// EscalateResponse результат эскалации
type EscalateResponse struct {
	Cancellation *domain.Cancellation
	Entry        *domain.BlacklistEntry
	Event        *domain.Event
}

// RespondRequest ручной ответ оператора
type RespondRequest struct {
	CancellationID int64
	Note           *string
}

// ListRequest фильтры списка отмен
type ListRequest struct {
	Status   *domain.CancellationStatus
	WorkerID *int64
	ShiftID  *int64
	From     *time.Time
	To       *time.Time
}
