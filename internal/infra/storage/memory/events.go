package memory

import (
	"context"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// EventRepository outbox фактов в памяти
type EventRepository struct {
	s *Store
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	r.s.write(ctx, func(u undoLog) {
		n := len(r.s.events)
		r.s.events = append(r.s.events, clone(e))
		u.push(func() { r.s.events = r.s.events[:n] })
	})
	return nil
}

// List возвращает все записанные факты в порядке записи
func (r *EventRepository) List(ctx context.Context) []*domain.Event {
	var result []*domain.Event
	r.s.read(ctx, func() {
		result = make([]*domain.Event, 0, len(r.s.events))
		for _, e := range r.s.events {
			result = append(result, clone(e))
		}
	})
	return result
}
