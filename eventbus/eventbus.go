package eventbus

import (
	"context"
	"encoding/json"
)

// Topic names a Kafka topic carrying domain events.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// Event is the envelope written as the Kafka message value.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventBus publishes domain events. Consumers of these events live outside
// this service.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// NoopEventBus drops every event. It is used when no brokers are configured.
type NoopEventBus struct{}

func (NoopEventBus) Publish(ctx context.Context, topic string, event Event) error { return nil }

func (NoopEventBus) Close() {}
