package rebooking

import (
	"slices"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// rankCandidates упорядочивает кандидатов и оставляет первые limit
// Исходный работник смены в выдачу не попадает
func rankCandidates(candidates []*domain.Worker, originalWorkerID *int64, limit int) []*domain.Worker {
	ranked := make([]*domain.Worker, 0, len(candidates))
	for _, w := range candidates {
		if originalWorkerID != nil && w.ID == *originalWorkerID {
			continue
		}
		if !w.IsAssignable() {
			continue
		}
		ranked = append(ranked, w)
	}

	slices.SortFunc(ranked, domain.CompareCandidates)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// effectiveLimit приводит запрошенный размер выдачи к [1, max]
func effectiveLimit(requested, max int) int {
	if max <= 0 {
		max = domain.DefaultMaxSuggestions
	}
	if requested <= 0 {
		return min(domain.DefaultMaxSuggestions, max)
	}
	return min(requested, max)
}
