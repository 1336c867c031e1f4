package lock

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
)

// Locker транзакционная блокировка работника в PostgreSQL
// pg_advisory_xact_lock снимается автоматически при COMMIT/ROLLBACK
type Locker struct {
	db        dbmetrics.DBExecutor
	namespace int32
}

// NewLocker создает блокировщик в пространстве имён namespace
func NewLocker(db dbmetrics.DBExecutor, namespace int32) *Locker {
	return &Locker{db: db, namespace: namespace}
}

// LockWorker блокирует работника до конца текущей транзакции
func (l *Locker) LockWorker(ctx context.Context, workerID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}

	executor := dbmetrics.GetExecutor(ctx, l.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", l.key(workerID)); err != nil {
		return fmt.Errorf("%w: LockWorker - worker %d: %v", ErrAcquire, workerID, err)
	}

	return nil
}

// key ключ блокировки bigint: пространство имён в старших 32 битах
func (l *Locker) key(workerID int64) int64 {
	return int64(l.namespace)<<32 ^ workerID
}
