package workerlock

import "context"

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// WorkerLocker транзакционная блокировка работника в хранилище
type WorkerLocker interface {
	LockWorker(ctx context.Context, workerID int64) error
}
