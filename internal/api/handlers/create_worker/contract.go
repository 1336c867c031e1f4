package create_worker

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

type WorkerService interface {
	Create(ctx context.Context, req *models.CreateWorkerRequest) (*models.WorkerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
