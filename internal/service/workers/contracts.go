package workers

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// WorkerRepository интерфейс репозитория работников
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) (*domain.Worker, error)
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
	List(ctx context.Context, filter domain.WorkersFilter) ([]*domain.Worker, error)
	UpdateProfile(ctx context.Context, worker *domain.Worker) error
}

// BlacklistHistory интерфейс журнала черного списка
type BlacklistHistory interface {
	History(ctx context.Context, workerID int64) ([]*domain.BlacklistEntry, error)
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
