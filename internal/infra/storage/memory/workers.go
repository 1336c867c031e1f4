package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
)

// WorkerRepository работники в памяти
type WorkerRepository struct {
	s *Store
}

func (r *WorkerRepository) Create(ctx context.Context, worker *domain.Worker) (*domain.Worker, error) {
	r.s.write(ctx, func(u undoLog) {
		now := r.s.now()
		worker.ID = r.s.nextID("workers")
		worker.Reliability = 0
		worker.TotalAssignments = 0
		worker.CompletedAssignments = 0
		worker.Blacklisted = false
		worker.CreatedAt = now
		worker.UpdatedAt = now
		set(u, r.s.workers, worker.ID, clone(worker))
	})
	return worker, nil
}

func (r *WorkerRepository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	var found *domain.Worker
	r.s.read(ctx, func() {
		found = clone(r.s.workers[id])
	})
	if found == nil {
		return nil, workerRepo.ErrWorkerNotFound
	}
	return found, nil
}

func (r *WorkerRepository) List(ctx context.Context, filter domain.WorkersFilter) ([]*domain.Worker, error) {
	result := make([]*domain.Worker, 0)
	r.s.read(ctx, func() {
		for _, w := range r.s.workers {
			if filter.Standby != nil && w.Standby != *filter.Standby {
				continue
			}
			if filter.Available != nil && w.Available != *filter.Available {
				continue
			}
			if filter.Blacklisted != nil && w.Blacklisted != *filter.Blacklisted {
				continue
			}
			if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, w.ID) {
				continue
			}
			result = append(result, clone(w))
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *WorkerRepository) UpdateProfile(ctx context.Context, worker *domain.Worker) error {
	return r.update(ctx, worker.ID, func(w *domain.Worker) {
		w.Name = worker.Name
		w.Role = worker.Role
		w.Location = worker.Location
		w.Email = worker.Email
		w.Phone = worker.Phone
		w.Available = worker.Available
		w.Standby = worker.Standby
	})
}

func (r *WorkerRepository) UpdateReliability(ctx context.Context, worker *domain.Worker) error {
	return r.update(ctx, worker.ID, func(w *domain.Worker) {
		w.Reliability = worker.Reliability
		w.TotalAssignments = worker.TotalAssignments
		w.CompletedAssignments = worker.CompletedAssignments
	})
}

func (r *WorkerRepository) SetBlacklisted(ctx context.Context, id int64) error {
	return r.update(ctx, id, func(w *domain.Worker) {
		w.Blacklisted = true
	})
}

func (r *WorkerRepository) update(ctx context.Context, id int64, apply func(w *domain.Worker)) error {
	found := false
	r.s.write(ctx, func(u undoLog) {
		current, ok := r.s.workers[id]
		if !ok {
			return
		}
		found = true
		next := clone(current)
		apply(next)
		next.UpdatedAt = r.s.now()
		set(u, r.s.workers, id, next)
	})
	if !found {
		return workerRepo.ErrWorkerNotFound
	}
	return nil
}
