package domain

import (
	"cmp"
	"time"
)

// RebookingSuggestion предложенная замена работника для отменённой смены
type RebookingSuggestion struct {
	ID          int64
	ShiftID     int64
	WorkerID    int64
	Rank        int // позиция в выдаче, начиная с 1
	SuggestedAt time.Time
	Accepted    bool
	AcceptedAt  *time.Time
	CreatedAt   time.Time
}

// SuggestionsFilter фильтр списка предложений
type SuggestionsFilter struct {
	ShiftID  *int64
	Accepted *bool
}

// CompareCandidates порядок кандидатов на замену:
// сначала резерв, затем по убыванию надёжности, затем по возрастанию ID
func CompareCandidates(a, b *Worker) int {
	if a.Standby != b.Standby {
		if a.Standby {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.Reliability, a.Reliability); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
