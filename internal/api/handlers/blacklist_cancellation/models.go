package blacklist_cancellation

import (
	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
	shiftModels "github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
	workerModels "github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

// BlacklistRequest HTTP request model, тело необязательно
type BlacklistRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// BlacklistResponse HTTP response model
type BlacklistResponse struct {
	Cancellation dto.CancellationResponse            `json:"cancellation"`
	Entry        workerModels.BlacklistEntryResponse `json:"entry"`
	Event        *shiftModels.EventResponse          `json:"event"`
}

func FromUseCaseResponse(resp *cancellationWorkflow.EscalateResponse) *BlacklistResponse {
	return &BlacklistResponse{
		Cancellation: *dto.FromDomainCancellation(resp.Cancellation),
		Entry:        *workerModels.FromDomainBlacklistEntry(resp.Entry),
		Event:        shiftModels.FromDomainEvent(resp.Event),
	}
}
