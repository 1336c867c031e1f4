package create_shift

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
)

// CreateShiftRequest HTTP request model
type CreateShiftRequest struct {
	Start    string  `json:"start"` // ISO-8601, "2025-03-10T10:00:00Z"
	End      string  `json:"end"`
	WorkerID *int64  `json:"workerId,omitempty"`
	Flag     *string `json:"flag,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Outlet   *string `json:"outlet,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateShiftRequest) ToServiceRequest() (*models.CreateShiftRequest, error) {
	start, err := time.Parse(domain.TimeFormat, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	end, err := time.Parse(domain.TimeFormat, r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &models.CreateShiftRequest{
		Start:    start,
		End:      end,
		WorkerID: r.WorkerID,
		Flag:     r.Flag,
		Notes:    r.Notes,
		Outlet:   r.Outlet,
	}, nil
}
