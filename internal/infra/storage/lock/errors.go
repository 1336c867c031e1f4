package lock

import "errors"

var (
	// ErrNoTransaction возвращается при попытке взять блокировку вне транзакции
	ErrNoTransaction = errors.New("lock.repository: advisory lock requires a transaction")

	// ErrAcquire возвращается, когда не удалось взять блокировку
	ErrAcquire = errors.New("lock.repository: failed to acquire advisory lock")
)
