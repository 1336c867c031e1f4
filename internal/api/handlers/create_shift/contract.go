package create_shift

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
)

type ShiftService interface {
	Create(ctx context.Context, req *models.CreateShiftRequest) (*models.ShiftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
