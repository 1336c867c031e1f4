package rebooking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shift, error)
	Update(ctx context.Context, shift *domain.Shift) error
}

// WorkerRepository интерфейс репозитория работников
type WorkerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

// SuggestionRepository интерфейс репозитория предложений замены
type SuggestionRepository interface {
	Create(ctx context.Context, s *domain.RebookingSuggestion) (*domain.RebookingSuggestion, error)
	GetByID(ctx context.Context, id int64) (*domain.RebookingSuggestion, error)
	List(ctx context.Context, filter domain.SuggestionsFilter) ([]*domain.RebookingSuggestion, error)
	MarkAccepted(ctx context.Context, id int64, at time.Time) error
}

// EventRepository интерфейс outbox фактов
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
}

// AvailabilityIndex интерфейс индекса доступности
type AvailabilityIndex interface {
	FindAvailable(ctx context.Context, windowStart, windowEnd time.Time, excludeBlacklisted bool) ([]*domain.Worker, error)
	CheckWorkerFree(ctx context.Context, workerID int64, start, end time.Time, excludeShiftID *int64) error
}

// WorkerGuard интерфейс блокировки расписания работника
type WorkerGuard interface {
	Do(ctx context.Context, workerID int64, fn func(ctx context.Context) error) error
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
