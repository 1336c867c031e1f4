package blacklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
)

// Registry реестр черного списка
// Каждый вызов Blacklist добавляет запись в журнал и ставит Worker.blacklisted = true
type Registry struct {
	workerRepo   WorkerRepository
	entryRepo    EntryRepository
	eventRepo    EventRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewRegistry создает новый экземпляр реестра
func NewRegistry(
	workerRepo WorkerRepository,
	entryRepo EntryRepository,
	eventRepo EventRepository,
	txManager TransactionManager,
	logger Logger,
) *Registry {
	return &Registry{
		workerRepo:   workerRepo,
		entryRepo:    entryRepo,
		eventRepo:    eventRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Blacklist заносит работника в черный список
// cancellationID - отмена, вызвавшая эскалацию (nil для ручного занесения)
// Возвращает запись журнала и факт worker_blacklisted, записанный в outbox
func (r *Registry) Blacklist(ctx context.Context, workerID int64, reason string, cancellationID *int64) (*domain.BlacklistEntry, *domain.Event, error) {
	r.logger.Info("Blacklist: worker id=%d, cancellation=%v", workerID, cancellationID)

	reason = strings.TrimSpace(reason)
	if reason == "" || utf8.RuneCountInString(reason) > domain.MaxBlacklistReasonLength {
		r.logger.Warn("Blacklist: invalid reason for worker id=%d", workerID)
		return nil, nil, ErrInvalidReason
	}

	var (
		entry *domain.BlacklistEntry
		event *domain.Event
	)

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		worker, err := r.workerRepo.GetByID(txCtx, workerID)
		if err != nil {
			if errors.Is(err, workerRepo.ErrWorkerNotFound) {
				r.logger.Warn("Blacklist: worker id=%d not found", workerID)
				return ErrWorkerNotFound
			}
			r.logger.Error("Blacklist: failed to get worker id=%d: %v", workerID, err)
			return fmt.Errorf("%w: Blacklist - get worker: %v", ErrInternal, err)
		}

		if worker.Blacklisted {
			r.logger.Info("Blacklist: worker id=%d already blacklisted, appending history entry", workerID)
		}

		created, err := r.entryRepo.Create(txCtx, &domain.BlacklistEntry{
			WorkerID:       workerID,
			Reason:         reason,
			CancellationID: cancellationID,
			BlacklistedAt:  r.timeProvider.Now(),
		})
		if err != nil {
			r.logger.Error("Blacklist: failed to append entry for worker id=%d: %v", workerID, err)
			return fmt.Errorf("%w: Blacklist - create entry: %v", ErrInternal, err)
		}

		if err := r.workerRepo.SetBlacklisted(txCtx, workerID); err != nil {
			r.logger.Error("Blacklist: failed to set flag for worker id=%d: %v", workerID, err)
			return fmt.Errorf("%w: Blacklist - set flag: %v", ErrInternal, err)
		}

		fact := domain.NewWorkerBlacklistedEvent(created)
		if err := r.eventRepo.Create(txCtx, fact); err != nil {
			r.logger.Error("Blacklist: failed to record event for worker id=%d: %v", workerID, err)
			return fmt.Errorf("%w: Blacklist - record event: %v", ErrInternal, err)
		}

		entry = created
		event = fact
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	r.logger.Info("Blacklist: worker id=%d blacklisted, entry id=%d", workerID, entry.ID)
	return entry, event, nil
}

// IsBlacklisted возвращает текущее значение флага черного списка
func (r *Registry) IsBlacklisted(ctx context.Context, workerID int64) (bool, error) {
	worker, err := r.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrWorkerNotFound) {
			return false, ErrWorkerNotFound
		}
		r.logger.Error("IsBlacklisted: failed to get worker id=%d: %v", workerID, err)
		return false, fmt.Errorf("%w: IsBlacklisted - get worker: %v", ErrInternal, err)
	}

	return worker.Blacklisted, nil
}

// History возвращает журнал черного списка работника
func (r *Registry) History(ctx context.Context, workerID int64) ([]*domain.BlacklistEntry, error) {
	entries, err := r.entryRepo.ListByWorker(ctx, workerID)
	if err != nil {
		r.logger.Error("History: failed to list entries for worker id=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: History - list entries: %v", ErrInternal, err)
	}

	return entries, nil
}
