package eventbus

import (
	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

// message тело сообщения в топике
type message struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	AggregateID int64                  `json:"aggregateId"`
	Payload     map[string]interface{} `json:"payload"`
	OccurredAt  string                 `json:"occurredAt"`
}

func fromDomainEvent(e *domain.Event) message {
	return message{
		ID:          e.ID,
		Type:        string(e.Type),
		AggregateID: e.AggregateID,
		Payload:     e.Payload,
		OccurredAt:  e.OccurredAt.UTC().Format(domain.TimeFormat),
	}
}
