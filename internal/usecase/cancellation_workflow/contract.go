package cancellation_workflow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// CancellationRepository интерфейс репозитория отмен
type CancellationRepository interface {
	Create(ctx context.Context, c *domain.Cancellation) (*domain.Cancellation, error)
	GetByID(ctx context.Context, id int64) (*domain.Cancellation, error)
	List(ctx context.Context, filter domain.CancellationsFilter) ([]*domain.Cancellation, error)
	CountByWorkerSince(ctx context.Context, workerID int64, since time.Time) (int, error)
	Update(ctx context.Context, c *domain.Cancellation) error
}

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shift, error)
	Update(ctx context.Context, shift *domain.Shift) error
}

// WorkerRepository интерфейс репозитория работников
type WorkerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

// BlacklistRegistry интерфейс реестра черного списка
type BlacklistRegistry interface {
	Blacklist(ctx context.Context, workerID int64, reason string, cancellationID *int64) (*domain.BlacklistEntry, *domain.Event, error)
}

// ReliabilityTracker интерфейс трекера надёжности
type ReliabilityTracker interface {
	RecordOutcome(ctx context.Context, workerID int64, completed bool) (*domain.Worker, error)
}

// RebookingEngine интерфейс подбора замены
type RebookingEngine interface {
	Suggest(ctx context.Context, shiftID int64, limit int) ([]*domain.RebookingSuggestion, error)
}

// EventPublisher интерфейс отправки фактов после коммита
type EventPublisher interface {
	Publish(ctx context.Context, events ...*domain.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
