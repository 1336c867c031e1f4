package memory

import "context"

type undoLog interface {
	push(fn func())
}

type discardUndo struct{}

func (discardUndo) push(func()) {}

type txState struct {
	undo []func()
}

func (t *txState) push(fn func()) {
	t.undo = append(t.undo, fn)
}

func (t *txState) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

type txKey struct{}

func txFromContext(ctx context.Context) *txState {
	tx, _ := ctx.Value(txKey{}).(*txState)
	return tx
}

// TxManager менеджер транзакций хранилища в памяти
// Все уровни изоляции эквивалентны SERIALIZABLE: транзакции выполняются по одной
type TxManager struct {
	s *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	tx := &txState{}

	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		tx.rollback()
		return err
	}

	return nil
}

// Locker блокировщик работников для хранилища в памяти
type Locker struct{}

// LockWorker ничего не делает: транзакция уже держит хранилище целиком
func (l *Locker) LockWorker(ctx context.Context, workerID int64) error {
	return nil
}
