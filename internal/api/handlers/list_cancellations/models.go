package list_cancellations

import (
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/api/handlers/dto"
	"github.com/m04kA/SMC-StaffingService/internal/domain"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

// CancellationListResponse HTTP response model
type CancellationListResponse struct {
	Cancellations []dto.CancellationResponse `json:"cancellations"`
}

// ToUseCaseRequest собирает фильтры из query: status, workerId, shiftId, from, to
func ToUseCaseRequest(r *http.Request) (*cancellationWorkflow.ListRequest, error) {
	workerID, err := handlers.QueryInt64(r, "workerId")
	if err != nil {
		return nil, err
	}

	shiftID, err := handlers.QueryInt64(r, "shiftId")
	if err != nil {
		return nil, err
	}

	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		return nil, err
	}

	to, err := handlers.QueryTime(r, "to")
	if err != nil {
		return nil, err
	}

	req := &cancellationWorkflow.ListRequest{
		WorkerID: workerID,
		ShiftID:  shiftID,
		From:     from,
		To:       to,
	}
	if status := handlers.QueryString(r, "status"); status != nil {
		s := domain.CancellationStatus(*status)
		req.Status = &s
	}

	return req, nil
}
