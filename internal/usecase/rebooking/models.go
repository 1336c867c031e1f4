package rebooking

import (
	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// AcceptResponse результат принятия предложения
type AcceptResponse struct {
	Shift      *domain.Shift
	Suggestion *domain.RebookingSuggestion
	Event      *domain.Event // shift_reassigned
}

// ListRequest фильтры списка предложений
type ListRequest struct {
	ShiftID  *int64
	Accepted *bool
}
