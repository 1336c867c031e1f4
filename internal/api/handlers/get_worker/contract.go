package get_worker

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

type WorkerService interface {
	GetByID(ctx context.Context, id int64) (*models.WorkerDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
