package reliability

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// WorkerRepository интерфейс репозитория работников
type WorkerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
	UpdateReliability(ctx context.Context, worker *domain.Worker) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
