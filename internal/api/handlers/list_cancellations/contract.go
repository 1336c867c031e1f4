package list_cancellations

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

type CancellationUseCase interface {
	List(ctx context.Context, req *cancellationWorkflow.ListRequest) ([]*domain.Cancellation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
