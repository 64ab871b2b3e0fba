// Package kafka publishes order events to Kafka with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"takeout/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// statusChangedMessage is the JSON payload of one status change.
type statusChangedMessage struct {
	EventID     string    `json:"eventId"`
	OrderID     int64     `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	CustomerID  int64     `json:"customerId"`
	Previous    int       `json:"previousStatus"`
	Current     int       `json:"status"`
	StatusName  string    `json:"statusName"`
	PayStatus   int       `json:"payStatus"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// OrderEventPublisher writes StatusChanged events keyed by order id, so
// every event of one order lands on the same partition in order.
// With no brokers configured it only logs.
type OrderEventPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewOrderEventPublisher builds a publisher for the comma separated brokers.
func NewOrderEventPublisher(brokersCSV, topic string, logger *slog.Logger) *OrderEventPublisher {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	var writer messageWriter
	if len(brokers) > 0 {
		writer = &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
	}

	return newOrderEventPublisher(writer, logger)
}

func newOrderEventPublisher(writer messageWriter, logger *slog.Logger) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: writer,
		logger: logger.With("component", "OrderEventPublisher"),
	}
}

func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	if p.writer == nil {
		p.logger.DebugContext(ctx, "order status changed",
			"order_id", event.OrderID,
			"status", event.Current.String(),
		)
		return nil
	}

	data, err := json.Marshal(statusChangedMessage{
		EventID:     event.EventID.String(),
		OrderID:     event.OrderID,
		OrderNumber: event.OrderNumber,
		CustomerID:  event.CustomerID,
		Previous:    int(event.Previous),
		Current:     int(event.Current),
		StatusName:  event.Current.String(),
		PayStatus:   int(event.PayStatus),
		Reason:      event.Reason,
		OccurredAt:  event.OccurredAt.UTC(),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("order.status_changed")},
		},
	})
}

// Close flushes pending writes.
func (p *OrderEventPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
