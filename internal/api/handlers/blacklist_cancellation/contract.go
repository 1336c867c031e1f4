package blacklist_cancellation

import (
	"context"

	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
)

type CancellationUseCase interface {
	Escalate(ctx context.Context, req *cancellationWorkflow.EscalateRequest) (*cancellationWorkflow.EscalateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
