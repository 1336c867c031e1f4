package accept_rebooking_suggestion

import (
	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
	shiftModels "github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
)

// AcceptResponse HTTP response model
type AcceptResponse struct {
	Shift      shiftModels.ShiftResponse  `json:"shift"`
	Suggestion dto.SuggestionResponse     `json:"suggestion"`
	Event      *shiftModels.EventResponse `json:"event"` // shift_reassigned
}

func FromUseCaseResponse(resp *rebooking.AcceptResponse) *AcceptResponse {
	return &AcceptResponse{
		Shift:      *shiftModels.FromDomainShift(resp.Shift),
		Suggestion: *dto.FromDomainSuggestion(resp.Suggestion),
		Event:      shiftModels.FromDomainEvent(resp.Event),
	}
}
