package availability

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// WorkerRepository интерфейс репозитория работников
type WorkerRepository interface {
	List(ctx context.Context, filter domain.WorkersFilter) ([]*domain.Worker, error)
}

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	ListActiveOverlapping(ctx context.Context, filter domain.ActiveOverlapFilter) ([]*domain.Shift, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
