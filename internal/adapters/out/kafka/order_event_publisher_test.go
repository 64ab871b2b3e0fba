package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"takeout/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct{ mock.Mock }

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() order.StatusChanged {
	return order.StatusChanged{
		EventID:     uuid.New(),
		OrderID:     7,
		OrderNumber: "01HXTEST7",
		CustomerID:  42,
		Previous:    order.ToBeConfirmed,
		Current:     order.Cancelled,
		PayStatus:   order.RefundPending,
		Reason:      "out of stock",
		OccurredAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderEventPublisher_PublishStatusChanged(t *testing.T) {
	ctx := t.Context()
	writer := new(mockWriter)
	event := testEvent()

	var sent []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	err := newOrderEventPublisher(writer, discardLogger()).PublishStatusChanged(ctx, event)

	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "7", string(sent[0].Key))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(sent[0].Value, &payload))
	assert.Equal(t, event.EventID.String(), payload["eventId"])
	assert.InDelta(t, float64(order.Cancelled), payload["status"], 0)
	assert.InDelta(t, float64(order.ToBeConfirmed), payload["previousStatus"], 0)
	assert.Equal(t, order.Cancelled.String(), payload["statusName"])
	assert.Equal(t, "out of stock", payload["reason"])
}

func TestOrderEventPublisher_PublishStatusChanged_WriterError(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available")).Once()

	err := newOrderEventPublisher(writer, discardLogger()).PublishStatusChanged(t.Context(), testEvent())

	require.EqualError(t, err, "leader not available")
}

func TestOrderEventPublisher_NoBrokers(t *testing.T) {
	publisher := NewOrderEventPublisher(" , ", "orders.status", discardLogger())

	require.NoError(t, publisher.PublishStatusChanged(t.Context(), testEvent()))
	require.NoError(t, publisher.Close())
}
