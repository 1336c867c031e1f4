package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	shiftRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/shift"
)

// ShiftRepository смены в памяти
type ShiftRepository struct {
	s *Store
}

func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error) {
	r.s.write(ctx, func(u undoLog) {
		now := r.s.now()
		shift.ID = r.s.nextID("shifts")
		shift.CreatedAt = now
		shift.UpdatedAt = now
		set(u, r.s.shifts, shift.ID, clone(shift))
	})
	return shift, nil
}

func (r *ShiftRepository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	var found *domain.Shift
	r.s.read(ctx, func() {
		found = clone(r.s.shifts[id])
	})
	if found == nil {
		return nil, shiftRepo.ErrShiftNotFound
	}
	return found, nil
}

func (r *ShiftRepository) List(ctx context.Context, filter domain.ShiftsFilter) ([]*domain.Shift, error) {
	return r.collect(ctx, func(sh *domain.Shift) bool {
		if filter.Status != nil && sh.Status != *filter.Status {
			return false
		}
		if filter.Flag != nil && sh.Flag != *filter.Flag {
			return false
		}
		if filter.WorkerID != nil && !sh.IsAssignedTo(*filter.WorkerID) {
			return false
		}
		if filter.From != nil && sh.Start.Before(*filter.From) {
			return false
		}
		if filter.To != nil && sh.End.After(*filter.To) {
			return false
		}
		return true
	}), nil
}

func (r *ShiftRepository) ListActiveOverlapping(ctx context.Context, filter domain.ActiveOverlapFilter) ([]*domain.Shift, error) {
	return r.collect(ctx, func(sh *domain.Shift) bool {
		if !sh.IsActive() || sh.WorkerID == nil {
			return false
		}
		if filter.WorkerID != nil && *sh.WorkerID != *filter.WorkerID {
			return false
		}
		if filter.ExcludeShiftID != nil && sh.ID == *filter.ExcludeShiftID {
			return false
		}
		return sh.Overlaps(filter.WindowStart, filter.WindowEnd)
	}), nil
}

func (r *ShiftRepository) Update(ctx context.Context, shift *domain.Shift) error {
	found := false
	r.s.write(ctx, func(u undoLog) {
		current, ok := r.s.shifts[shift.ID]
		if !ok {
			return
		}
		found = true
		next := clone(current)
		next.Status = shift.Status
		next.Flag = shift.Flag
		next.Notes = shift.Notes
		next.WorkerID = shift.WorkerID
		next.UpdatedAt = r.s.now()
		set(u, r.s.shifts, shift.ID, next)
	})
	if !found {
		return shiftRepo.ErrShiftNotFound
	}
	return nil
}

func (r *ShiftRepository) collect(ctx context.Context, match func(sh *domain.Shift) bool) []*domain.Shift {
	result := make([]*domain.Shift, 0)
	r.s.read(ctx, func() {
		for _, sh := range r.s.shifts {
			if match(sh) {
				result = append(result, clone(sh))
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.Before(result[j].Start)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
