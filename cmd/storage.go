package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/config"
	blacklistRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/blacklist"
	cancellationRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/cancellation"
	eventRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-StaffingService/internal/infra/storage/lock"
	"github.com/m04kA/SMC-StaffingService/internal/infra/storage/memory"
	shiftRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/shift"
	suggestionRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/suggestion"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
	"github.com/m04kA/SMC-StaffingService/internal/service/availability"
	"github.com/m04kA/SMC-StaffingService/internal/service/blacklist"
	"github.com/m04kA/SMC-StaffingService/internal/service/reliability"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
	"github.com/m04kA/SMC-StaffingService/internal/service/workerlock"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers"
	cancellationWorkflow "github.com/m04kA/SMC-StaffingService/internal/usecase/cancellation_workflow"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
	"github.com/m04kA/SMC-StaffingService/pkg/metrics"
	"github.com/m04kA/SMC-StaffingService/pkg/txmanager"
)

// Репозитории удовлетворяют контрактам всех потребителей сразу,
// поэтому postgres и memory взаимозаменяемы при сборке
type workerRepository interface {
	workers.WorkerRepository
	shifts.WorkerRepository
	blacklist.WorkerRepository
	availability.WorkerRepository
	reliability.WorkerRepository
	rebooking.WorkerRepository
	cancellationWorkflow.WorkerRepository
}

type shiftRepository interface {
	shifts.ShiftRepository
	availability.ShiftRepository
	rebooking.ShiftRepository
	cancellationWorkflow.ShiftRepository
}

type eventRepository interface {
	shifts.EventRepository
	blacklist.EventRepository
	rebooking.EventRepository
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор репозиториев выбранного драйвера
type storage struct {
	workers       workerRepository
	shifts        shiftRepository
	cancellations cancellationWorkflow.CancellationRepository
	blacklist     blacklist.EntryRepository
	suggestions   rebooking.SuggestionRepository
	events        eventRepository
	txManager     transactionManager
	locker        workerlock.WorkerLocker
	close         func() error
}

// openStorage собирает хранилище по storage.driver
func openStorage(cfg *config.Config, m *metrics.Metrics, stopMetricsCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage: data is lost on restart")
		store := memory.NewStore()
		return &storage{
			workers:       store.Workers(),
			shifts:        store.Shifts(),
			cancellations: store.Cancellations(),
			blacklist:     store.Blacklist(),
			suggestions:   store.Suggestions(),
			events:        store.Events(),
			txManager:     store.TxManager(),
			locker:        store.Locker(),
			close:         func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrapped *dbmetrics.DB
	if m != nil {
		wrapped = dbmetrics.WrapWithDefault(db, m, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrapped = dbmetrics.Wrap(db)
	}

	return &storage{
		workers:       workerRepo.NewRepository(wrapped),
		shifts:        shiftRepo.NewRepository(wrapped),
		cancellations: cancellationRepo.NewRepository(wrapped),
		blacklist:     blacklistRepo.NewRepository(wrapped),
		suggestions:   suggestionRepo.NewRepository(wrapped),
		events:        eventRepo.NewRepository(wrapped),
		txManager:     txmanager.NewTransactionManager(wrapped),
		locker:        lock.NewLocker(wrapped, cfg.Storage.LockNamespace),
		close:         db.Close,
	}, nil
}
