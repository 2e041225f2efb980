package eventbus

import (
	"encoding/json"
	"fmt"
	"time"
)

// NewJSONEvent encodes payload as JSON and wraps it in an Event. An empty id
// is replaced by a nanosecond timestamp.
func NewJSONEvent(id, eventType string, payload any) (Event, error) {
	if id == "" {
		id = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("payload marshal failed: %w", err)
	}
	return Event{
		ID:      id,
		Type:    eventType,
		Payload: b,
	}, nil
}

// DecodeJSON unmarshals Event.Payload into T.
func DecodeJSON[T any](evt Event) (T, error) {
	var out T
	if err := json.Unmarshal(evt.Payload, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("payload unmarshal failed: %w", err)
	}
	return out, nil
}
