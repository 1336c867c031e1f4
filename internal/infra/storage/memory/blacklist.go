package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// BlacklistRepository журнал черного списка в памяти
type BlacklistRepository struct {
	s *Store
}

func (r *BlacklistRepository) Create(ctx context.Context, entry *domain.BlacklistEntry) (*domain.BlacklistEntry, error) {
	r.s.write(ctx, func(u undoLog) {
		entry.ID = r.s.nextID("blacklist_entries")
		entry.CreatedAt = r.s.now()
		set(u, r.s.blacklist, entry.ID, clone(entry))
	})
	return entry, nil
}

func (r *BlacklistRepository) ListByWorker(ctx context.Context, workerID int64) ([]*domain.BlacklistEntry, error) {
	result := make([]*domain.BlacklistEntry, 0)
	r.s.read(ctx, func() {
		for _, e := range r.s.blacklist {
			if e.WorkerID == workerID {
				result = append(result, clone(e))
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].BlacklistedAt.Equal(result[j].BlacklistedAt) {
			return result[i].BlacklistedAt.Before(result[j].BlacklistedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
