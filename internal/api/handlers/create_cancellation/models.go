package create_cancellation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
	"github.com/m04kA/SMC-StaffingService/internal/domain"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

// CreateCancellationRequest HTTP request model
type CreateCancellationRequest struct {
	ShiftID      int64   `json:"shiftId"`
	WorkerID     int64   `json:"workerId"`
	Reason       string  `json:"reason"` // no_show | late_cancellation | unexpected | schedule_conflict | other
	ReasonDetail *string `json:"reasonDetail,omitempty"`
	Time         *string `json:"time,omitempty"` // ISO-8601, по умолчанию текущее время
}

// CreateCancellationResponse HTTP response model
type CreateCancellationResponse struct {
	Cancellation          dto.CancellationResponse `json:"cancellation"`
	Suggestions           []dto.SuggestionResponse `json:"suggestions"`
	RecentCancellations   int                      `json:"recentCancellations"`
	EscalationRecommended bool                     `json:"escalationRecommended"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCancellationRequest) ToUseCaseRequest() (*cancellationWorkflow.CreateRequest, error) {
	req := &cancellationWorkflow.CreateRequest{
		ShiftID:      r.ShiftID,
		WorkerID:     r.WorkerID,
		Reason:       domain.CancellationReason(r.Reason),
		ReasonDetail: r.ReasonDetail,
	}

	if r.Time != nil {
		t, err := time.Parse(domain.TimeFormat, *r.Time)
		if err != nil {
			return nil, fmt.Errorf("time: %w", err)
		}
		req.Time = &t
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancellationWorkflow.CreateResponse) *CreateCancellationResponse {
	return &CreateCancellationResponse{
		Cancellation:          *dto.FromDomainCancellation(resp.Cancellation),
		Suggestions:           dto.FromDomainSuggestionList(resp.Suggestions),
		RecentCancellations:   resp.RecentCancellations,
		EscalationRecommended: resp.EscalationRecommended,
	}
}
