package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// Store хранилище в памяти с теми же контрактами, что и PostgreSQL-репозитории
// Используется драйвером storage.driver = "memory" и в тестах сервисов
//
// Транзакции сериализуются: TxManager держит mu на запись всё время транзакции,
// чтение вне транзакции берёт mu на чтение и видит только зафиксированные данные
type Store struct {
	mu sync.RWMutex

	workers       map[int64]*domain.Worker
	shifts        map[int64]*domain.Shift
	cancellations map[int64]*domain.Cancellation
	blacklist     map[int64]*domain.BlacklistEntry
	suggestions   map[int64]*domain.RebookingSuggestion
	events        []*domain.Event

	seq map[string]int64
	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		workers:       make(map[int64]*domain.Worker),
		shifts:        make(map[int64]*domain.Shift),
		cancellations: make(map[int64]*domain.Cancellation),
		blacklist:     make(map[int64]*domain.BlacklistEntry),
		suggestions:   make(map[int64]*domain.RebookingSuggestion),
		seq:           make(map[string]int64),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Workers репозиторий работников
func (s *Store) Workers() *WorkerRepository { return &WorkerRepository{s: s} }

// Shifts репозиторий смен
func (s *Store) Shifts() *ShiftRepository { return &ShiftRepository{s: s} }

// Cancellations репозиторий отмен
func (s *Store) Cancellations() *CancellationRepository { return &CancellationRepository{s: s} }

// Blacklist журнал черного списка
func (s *Store) Blacklist() *BlacklistRepository { return &BlacklistRepository{s: s} }

// Suggestions репозиторий предложений замены
func (s *Store) Suggestions() *SuggestionRepository { return &SuggestionRepository{s: s} }

// Events outbox фактов
func (s *Store) Events() *EventRepository { return &EventRepository{s: s} }

// TxManager менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// Locker блокировщик работников (no-op: транзакции и так сериализованы)
func (s *Store) Locker() *Locker { return &Locker{} }

// nextID выдаёт ID как последовательность PostgreSQL: откат транзакции ID не возвращает
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// read выполняет fn под блокировкой на чтение (внутри транзакции блокировка уже взята)
func (s *Store) read(ctx context.Context, fn func()) {
	if txFromContext(ctx) != nil {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// write выполняет fn под блокировкой на запись
// Внутри транзакции изменения пишутся в undo-журнал транзакции
func (s *Store) write(ctx context.Context, fn func(u undoLog)) {
	if tx := txFromContext(ctx); tx != nil {
		fn(tx)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(discardUndo{})
}

// set кладёт строку в таблицу и запоминает, как вернуть прежнее значение
func set[T any](u undoLog, rows map[int64]*T, id int64, v *T) {
	prev, existed := rows[id]
	rows[id] = v
	u.push(func() {
		if existed {
			rows[id] = prev
		} else {
			delete(rows, id)
		}
	})
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
