package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
	"github.com/m04kA/SMC-StaffingService/pkg/ptr"
)

type fakeWriter struct {
	msgs     []kafka.Message
	err      error
	closed   bool
	deadline bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, w.deadline = ctx.Deadline()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, time.Second, logger.NewNop())

	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	shift := &domain.Shift{ID: 7, Start: at, End: at.Add(2 * time.Hour), WorkerID: ptr.Ptr(int64(3))}
	event := domain.NewShiftReassignedEvent(shift, ptr.Ptr(int64(2)), nil, at)

	require.NoError(t, p.Publish(context.Background(), event, nil))
	require.Len(t, writer.msgs, 1)
	assert.True(t, writer.deadline)

	msg := writer.msgs[0]
	assert.Equal(t, "7", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, headerEventType, msg.Headers[0].Key)
	assert.Equal(t, "shift_reassigned", string(msg.Headers[0].Value))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, event.ID, body["id"])
	assert.Equal(t, "shift_reassigned", body["type"])
	assert.Equal(t, float64(7), body["aggregateId"])
	assert.Equal(t, "2025-03-10T12:00:00Z", body["occurredAt"])

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	p := NewPublisherWithWriter(writer, 0, logger.NewNop())

	entry := &domain.BlacklistEntry{ID: 1, WorkerID: 5, Reason: "неявки", BlacklistedAt: time.Now()}
	err := p.Publish(context.Background(), domain.NewWorkerBlacklistedEvent(entry))
	assert.ErrorIs(t, err, ErrWrite)
}

func TestKafkaPublisher_NothingToSend(t *testing.T) {
	writer := &fakeWriter{err: errors.New("must not be called")}
	p := NewPublisherWithWriter(writer, time.Second, logger.NewNop())

	assert.NoError(t, p.Publish(context.Background()))
	assert.Empty(t, writer.msgs)
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaConfig{Topic: "events"}, logger.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}}, logger.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "events"}, logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(logger.NewNop())
	entry := &domain.BlacklistEntry{ID: 1, WorkerID: 5, Reason: "неявки", BlacklistedAt: time.Now()}
	assert.NoError(t, p.Publish(context.Background(), domain.NewWorkerBlacklistedEvent(entry)))
	assert.NoError(t, p.Close())
}
