package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffingService/pkg/psqlbuilder"
)

// Repository outbox фактов (scheduling_events)
// Запись выполняется в той же транзакции, что и изменение состояния
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр outbox-репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет факт
func (r *Repository) Create(ctx context.Context, e *domain.Event) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("%w: Create - event %s: %v", ErrMarshalPayload, e.ID, err)
	}

	query, args, err := psqlbuilder.Insert("scheduling_events").
		Columns("id", "event_type", "aggregate_id", "payload", "occurred_at").
		Values(e.ID, e.Type, e.AggregateID, payload, e.OccurredAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
