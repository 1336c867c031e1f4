package keylock

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
)

// KeyLock набор мьютексов, по одному на ключ
// Используется для сериализации изменений одного работника внутри процесса
// до того, как запрос дойдёт до блокировки в БД.
// Запись ключа живёт, пока его держат или ждут, и удаляется последним unlock
type KeyLock[K comparable] struct {
	locks *xsync.Map[K, *entry]
}

type entry struct {
	mu   sync.Mutex
	refs int // держатели и ожидающие, меняется только внутри Compute
}

// New создает новый набор блокировок
func New[K comparable]() *KeyLock[K] {
	return &KeyLock[K]{locks: xsync.NewMap[K, *entry]()}
}

// Lock захватывает блокировку ключа и возвращает функцию освобождения
func (l *KeyLock[K]) Lock(key K) (unlock func()) {
	e, _ := l.locks.Compute(key, func(old *entry, loaded bool) (*entry, xsync.ComputeOp) {
		if !loaded {
			old = &entry{}
		}
		old.refs++
		return old, xsync.UpdateOp
	})
	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		l.locks.Compute(key, func(old *entry, loaded bool) (*entry, xsync.ComputeOp) {
			old.refs--
			if old.refs == 0 {
				return nil, xsync.DeleteOp
			}
			return old, xsync.UpdateOp
		})
	}
}

// Size возвращает количество ключей, которые сейчас держат или ждут
func (l *KeyLock[K]) Size() int {
	return l.locks.Size()
}
