package reliability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
)

// Tracker единственный writer надёжности работника
// Не дедуплицирует вызовы: вызывающая сторона гарантирует один исход на смену
type Tracker struct {
	workerRepo WorkerRepository
	txManager  TransactionManager
	logger     Logger
}

// NewTracker создает новый экземпляр трекера надёжности
func NewTracker(workerRepo WorkerRepository, txManager TransactionManager, logger Logger) *Tracker {
	return &Tracker{
		workerRepo: workerRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// RecordOutcome учитывает исход смены: total++, completed++ при completed=true,
// reliability = completed/total*100
// Если в контексте уже есть транзакция, запись выполняется в ней
func (t *Tracker) RecordOutcome(ctx context.Context, workerID int64, completed bool) (*domain.Worker, error) {
	var result *domain.Worker

	err := t.txManager.Do(ctx, func(txCtx context.Context) error {
		worker, err := t.workerRepo.GetByID(txCtx, workerID)
		if err != nil {
			if errors.Is(err, workerRepo.ErrWorkerNotFound) {
				t.logger.Warn("RecordOutcome: worker id=%d not found", workerID)
				return ErrWorkerNotFound
			}
			t.logger.Error("RecordOutcome: failed to get worker id=%d: %v", workerID, err)
			return fmt.Errorf("%w: RecordOutcome - get worker: %v", ErrInternal, err)
		}

		worker.RecordOutcome(completed)

		if err := t.workerRepo.UpdateReliability(txCtx, worker); err != nil {
			t.logger.Error("RecordOutcome: failed to save reliability for worker id=%d: %v", workerID, err)
			return fmt.Errorf("%w: RecordOutcome - update worker: %v", ErrInternal, err)
		}

		result = worker
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("RecordOutcome: worker id=%d completed=%t -> reliability=%.2f (%d/%d)",
		workerID, completed, result.Reliability, result.CompletedAssignments, result.TotalAssignments)

	return result, nil
}

// Reliability возвращает текущую надёжность работника
func (t *Tracker) Reliability(ctx context.Context, workerID int64) (float64, error) {
	worker, err := t.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, workerRepo.ErrWorkerNotFound) {
			return 0, ErrWorkerNotFound
		}
		t.logger.Error("Reliability: failed to get worker id=%d: %v", workerID, err)
		return 0, fmt.Errorf("%w: Reliability - get worker: %v", ErrInternal, err)
	}

	return worker.Reliability, nil
}
