package producer

import (
	"context"

	"noassets/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// relay writes one outbox row to its topic, keyed by aggregate so all events
// for one entity land on the same partition in order.
func relay(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	return writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	})
}
