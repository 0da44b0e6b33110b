// Package kafka publishes order lifecycle events to a Kafka topic for
// downstream consumers such as notifications and analytics.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderEventPublisher implements ports.OrderEventPublisher on top of a Kafka
// writer. Events are keyed by order ID so all changes of one order land on the
// same partition and consumers observe them in order.
type OrderEventPublisher struct {
	writer *kafka.Writer
}

// NewOrderEventPublisher creates a publisher writing to the given topic.
func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishOrderChanged sends the event as JSON keyed by order ID.
func (p *OrderEventPublisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

// Close releases the underlying writer's resources.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
