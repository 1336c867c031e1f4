package get_available_workers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
)

var errMissingWindow = errors.New("start and end are required")

// ToServiceRequest собирает окно из query: start, end, includeBlacklisted
func ToServiceRequest(r *http.Request) (*models.AvailableWorkersRequest, error) {
	start, err := handlers.QueryTime(r, "start")
	if err != nil {
		return nil, err
	}

	end, err := handlers.QueryTime(r, "end")
	if err != nil {
		return nil, err
	}

	if start == nil || end == nil {
		return nil, errMissingWindow
	}

	includeBlacklisted, err := handlers.QueryBool(r, "includeBlacklisted")
	if err != nil {
		return nil, err
	}

	req := &models.AvailableWorkersRequest{Start: *start, End: *end}
	if includeBlacklisted != nil {
		req.IncludeBlacklisted = *includeBlacklisted
	}
	return req, nil
}
