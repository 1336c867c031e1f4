package workerlock

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/keylock"
)

// ErrLock возвращается, когда не удалось взять блокировку работника
var ErrLock = fmt.Errorf("%w: workerlock: failed to lock worker", domain.ErrInternal)

// Guard сериализует изменения, затрагивающие расписание одного работника
//
// Порядок: мьютекс процесса по workerID -> транзакция READ COMMITTED ->
// блокировка в хранилище (pg_advisory_xact_lock) -> fn.
// Внутри fn вызывающий перепроверяет пересечения и пишет изменения.
type Guard struct {
	keys      *keylock.KeyLock[int64]
	txManager TransactionManager
	locker    WorkerLocker
}

// NewGuard создает новый экземпляр Guard
func NewGuard(txManager TransactionManager, locker WorkerLocker) *Guard {
	return &Guard{
		keys:      keylock.New[int64](),
		txManager: txManager,
		locker:    locker,
	}
}

// Do выполняет fn в транзакции под блокировкой работника
// Ошибка fn откатывает транзакцию целиком и возвращается без изменений
func (g *Guard) Do(ctx context.Context, workerID int64, fn func(ctx context.Context) error) error {
	unlock := g.keys.Lock(workerID)
	defer unlock()

	return g.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := g.locker.LockWorker(txCtx, workerID); err != nil {
			return errors.Join(ErrLock, err)
		}
		return fn(txCtx)
	})
}
