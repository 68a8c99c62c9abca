package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/gopal-gautam/empms-backend/internal/events"
	"github.com/gopal-gautam/empms-backend/internal/messaging/kafka"
	"github.com/gopal-gautam/empms-backend/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failKeys map[string]bool
	written  []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.failKeys[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	pending := []kafka.OutboxEvent{
		{ID: "o1", RequestID: "rid-1", AggregateType: "employee", AggregateID: "e1", EventType: events.EmployeeCreated, Topic: events.EmployeeLifecycleTopic, Payload: []byte(`{}`)},
		{ID: "o2", AggregateType: "employee", AggregateID: "e2", EventType: events.EmployeeDeleted, Topic: events.EmployeeLifecycleTopic, Payload: []byte(`{}`)},
	}
	writer := &fakeWriter{failKeys: map[string]bool{"e2": true}}

	repo.EXPECT().ListPending(ctx, 10).Return(pending, nil)
	repo.EXPECT().MarkSent(ctx, "o1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "o2", "broker unavailable").Return(nil)

	sent, err := processPendingEvents(ctx, repo, writer, zap.NewNop(), 10)

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, writer.written, 1)
	msg := writer.written[0]
	assert.Equal(t, events.EmployeeLifecycleTopic, msg.Topic)
	assert.Equal(t, []byte("e1"), msg.Key)
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "event_type", Value: []byte(events.EmployeeCreated)})
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid-1")})
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, defaultBatchSize).Return(nil, errors.New("db down"))

	sent, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), defaultBatchSize)

	assert.Error(t, err)
	assert.Zero(t, sent)
}
