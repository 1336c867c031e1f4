package domain

import "time"

// BlacklistEntry запись журнала черного списка (только добавление)
type BlacklistEntry struct {
	ID             int64
	WorkerID       int64
	Reason         string
	CancellationID *int64 // отмена, по которой произошла эскалация (если есть)
	BlacklistedAt  time.Time
	CreatedAt      time.Time
}
