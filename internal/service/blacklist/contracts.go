package blacklist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// WorkerRepository интерфейс репозитория работников
type WorkerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
	SetBlacklisted(ctx context.Context, id int64) error
}

// EntryRepository интерфейс журнала черного списка
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.BlacklistEntry) (*domain.BlacklistEntry, error)
	ListByWorker(ctx context.Context, workerID int64) ([]*domain.BlacklistEntry, error)
}

// EventRepository интерфейс outbox фактов
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
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
