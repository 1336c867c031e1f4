package create_cancellation

import (
	"context"

	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

type CancellationUseCase interface {
	Create(ctx context.Context, req *cancellationWorkflow.CreateRequest) (*cancellationWorkflow.CreateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
