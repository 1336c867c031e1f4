package create_rebooking_suggestions

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

type RebookingUseCase interface {
	Suggest(ctx context.Context, shiftID int64, limit int) ([]*domain.RebookingSuggestion, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
