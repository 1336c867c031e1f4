package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	cancellationRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/cancellation"
)

// CancellationRepository отмены в памяти
type CancellationRepository struct {
	s *Store
}

func (r *CancellationRepository) Create(ctx context.Context, c *domain.Cancellation) (*domain.Cancellation, error) {
	r.s.write(ctx, func(u undoLog) {
		now := r.s.now()
		c.ID = r.s.nextID("cancellations")
		c.CreatedAt = now
		c.UpdatedAt = now
		set(u, r.s.cancellations, c.ID, clone(c))
	})
	return c, nil
}

func (r *CancellationRepository) GetByID(ctx context.Context, id int64) (*domain.Cancellation, error) {
	var found *domain.Cancellation
	r.s.read(ctx, func() {
		found = clone(r.s.cancellations[id])
	})
	if found == nil {
		return nil, cancellationRepo.ErrCancellationNotFound
	}
	return found, nil
}

func (r *CancellationRepository) List(ctx context.Context, filter domain.CancellationsFilter) ([]*domain.Cancellation, error) {
	result := make([]*domain.Cancellation, 0)
	r.s.read(ctx, func() {
		for _, c := range r.s.cancellations {
			if filter.Status != nil && c.Status != *filter.Status {
				continue
			}
			if filter.WorkerID != nil && c.WorkerID != *filter.WorkerID {
				continue
			}
			if filter.ShiftID != nil && c.ShiftID != *filter.ShiftID {
				continue
			}
			if filter.From != nil && c.Time.Before(*filter.From) {
				continue
			}
			if filter.To != nil && c.Time.After(*filter.To) {
				continue
			}
			result = append(result, clone(c))
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Time.Equal(result[j].Time) {
			return result[i].Time.After(result[j].Time)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *CancellationRepository) CountByWorkerSince(ctx context.Context, workerID int64, since time.Time) (int, error) {
	count := 0
	r.s.read(ctx, func() {
		for _, c := range r.s.cancellations {
			if c.WorkerID == workerID && !c.Time.Before(since) {
				count++
			}
		}
	})
	return count, nil
}

func (r *CancellationRepository) Update(ctx context.Context, c *domain.Cancellation) error {
	found := false
	r.s.write(ctx, func(u undoLog) {
		current, ok := r.s.cancellations[c.ID]
		if !ok {
			return
		}
		found = true
		next := clone(current)
		next.Status = c.Status
		next.ResponseNote = c.ResponseNote
		next.AutoReplySent = c.AutoReplySent
		next.FallbackHandled = c.FallbackHandled
		next.Blacklisted = c.Blacklisted
		next.UpdatedAt = r.s.now()
		set(u, r.s.cancellations, c.ID, next)
	})
	if !found {
		return cancellationRepo.ErrCancellationNotFound
	}
	return nil
}
