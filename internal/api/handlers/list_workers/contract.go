package list_workers

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

type WorkerService interface {
	List(ctx context.Context, req *models.ListWorkersRequest) (*models.WorkerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
