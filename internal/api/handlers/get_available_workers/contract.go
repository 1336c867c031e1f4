package get_available_workers

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
)

type ShiftService interface {
	AvailableWorkers(ctx context.Context, req *models.AvailableWorkersRequest) (*models.AvailableWorkersResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
