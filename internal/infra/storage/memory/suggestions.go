package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	suggestionRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/suggestion"
)

// SuggestionRepository предложения замены в памяти
type SuggestionRepository struct {
	s *Store
}

func (r *SuggestionRepository) Create(ctx context.Context, sg *domain.RebookingSuggestion) (*domain.RebookingSuggestion, error) {
	r.s.write(ctx, func(u undoLog) {
		sg.ID = r.s.nextID("rebooking_suggestions")
		sg.Accepted = false
		sg.AcceptedAt = nil
		sg.CreatedAt = r.s.now()
		set(u, r.s.suggestions, sg.ID, clone(sg))
	})
	return sg, nil
}

func (r *SuggestionRepository) GetByID(ctx context.Context, id int64) (*domain.RebookingSuggestion, error) {
	var found *domain.RebookingSuggestion
	r.s.read(ctx, func() {
		found = clone(r.s.suggestions[id])
	})
	if found == nil {
		return nil, suggestionRepo.ErrSuggestionNotFound
	}
	return found, nil
}

func (r *SuggestionRepository) List(ctx context.Context, filter domain.SuggestionsFilter) ([]*domain.RebookingSuggestion, error) {
	result := make([]*domain.RebookingSuggestion, 0)
	r.s.read(ctx, func() {
		for _, sg := range r.s.suggestions {
			if filter.ShiftID != nil && sg.ShiftID != *filter.ShiftID {
				continue
			}
			if filter.Accepted != nil && sg.Accepted != *filter.Accepted {
				continue
			}
			result = append(result, clone(sg))
		}
	})
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.ShiftID != b.ShiftID {
			return a.ShiftID < b.ShiftID
		}
		if !a.SuggestedAt.Equal(b.SuggestedAt) {
			return a.SuggestedAt.Before(b.SuggestedAt)
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (r *SuggestionRepository) MarkAccepted(ctx context.Context, id int64, at time.Time) error {
	found := false
	r.s.write(ctx, func(u undoLog) {
		current, ok := r.s.suggestions[id]
		if !ok || current.Accepted {
			return
		}
		found = true
		next := clone(current)
		next.Accepted = true
		acceptedAt := at
		next.AcceptedAt = &acceptedAt
		set(u, r.s.suggestions, id, next)
	})
	if !found {
		return suggestionRepo.ErrSuggestionNotFound
	}
	return nil
}
