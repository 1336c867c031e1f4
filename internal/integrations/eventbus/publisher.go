package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
)

const (
	headerEventType = "event-type"
	headerEventID   = "event-id"

	defaultWriteTimeout = 10 * time.Second
)

// KafkaConfig параметры подключения к Kafka
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// KafkaPublisher отправляет факты из outbox в Kafka после коммита
// Ключ сообщения - aggregate id: факты одной смены или работника попадают в одну партицию
type KafkaPublisher struct {
	writer       MessageWriter
	writeTimeout time.Duration
	logger       Logger
}

// NewKafkaPublisher создает паблишер поверх kafka.Writer
func NewKafkaPublisher(cfg KafkaConfig, logger Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, fmt.Errorf("%w: brokers and topic are required", ErrInvalidConfig)
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireAll,
	}

	return NewPublisherWithWriter(writer, cfg.WriteTimeout, logger), nil
}

// NewPublisherWithWriter создает паблишер с произвольным writer (для тестов)
func NewPublisherWithWriter(writer MessageWriter, writeTimeout time.Duration, logger Logger) *KafkaPublisher {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &KafkaPublisher{
		writer:       writer,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// Publish отправляет факты одним батчем, без повторов
func (p *KafkaPublisher) Publish(ctx context.Context, events ...*domain.Event) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}

		value, err := json.Marshal(fromDomainEvent(e))
		if err != nil {
			return fmt.Errorf("%w: Publish - event id=%s: %v", ErrEncode, e.ID, err)
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatInt(e.AggregateID, 10)),
			Value: value,
			Time:  e.OccurredAt,
			Headers: []kafka.Header{
				{Key: headerEventType, Value: []byte(e.Type)},
				{Key: headerEventID, Value: []byte(e.ID)},
			},
		})
	}

	if len(msgs) == 0 {
		return nil
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msgs...); err != nil {
		return fmt.Errorf("%w: Publish - %d messages: %v", ErrWrite, len(msgs), err)
	}

	p.logger.Info("Publish: sent %d events to kafka", len(msgs))
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NoopPublisher используется, когда Kafka отключена: факты остаются только в outbox
type NoopPublisher struct {
	logger Logger
}

// NewNoopPublisher создает паблишер-заглушку
func NewNoopPublisher(logger Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

// Publish ничего не отправляет
func (p *NoopPublisher) Publish(_ context.Context, events ...*domain.Event) error {
	for _, e := range events {
		if e != nil {
			p.logger.Info("Publish: kafka disabled, event id=%s type=%s kept in outbox", e.ID, e.Type)
		}
	}
	return nil
}

// Close ничего не делает
func (p *NoopPublisher) Close() error {
	return nil
}
