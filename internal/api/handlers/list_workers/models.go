package list_workers

import (
	"net/http"

	"github.com/m04kA/SMC-StaffingService/internal/api/handlers"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

// ToServiceRequest собирает фильтры из query: standby, available, blacklisted
func ToServiceRequest(r *http.Request) (*models.ListWorkersRequest, error) {
	standby, err := handlers.QueryBool(r, "standby")
	if err != nil {
		return nil, err
	}

	available, err := handlers.QueryBool(r, "available")
	if err != nil {
		return nil, err
	}

	blacklisted, err := handlers.QueryBool(r, "blacklisted")
	if err != nil {
		return nil, err
	}

	return &models.ListWorkersRequest{
		Standby:     standby,
		Available:   available,
		Blacklisted: blacklisted,
	}, nil
}
