package list_shifts

import (
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
)

// ToServiceRequest собирает фильтры из query: status, flag, workerId, from, to
func ToServiceRequest(r *http.Request) (*models.ListShiftsRequest, error) {
	workerID, err := handlers.QueryInt64(r, "workerId")
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

	return &models.ListShiftsRequest{
		Status:   handlers.QueryString(r, "status"),
		Flag:     handlers.QueryString(r, "flag"),
		WorkerID: workerID,
		From:     from,
		To:       to,
	}, nil
}
