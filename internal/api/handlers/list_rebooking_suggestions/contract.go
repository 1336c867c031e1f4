package list_rebooking_suggestions

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
)

type RebookingUseCase interface {
	List(ctx context.Context, req *rebooking.ListRequest) ([]*domain.RebookingSuggestion, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
