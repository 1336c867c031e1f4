package accept_rebooking_suggestion

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
)

type RebookingUseCase interface {
	Accept(ctx context.Context, suggestionID int64) (*rebooking.AcceptResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
