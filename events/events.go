package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType identifies a domain event on the bus.
type EventType string

const (
	ContentGenerated EventType = "content.generated"
	ContentPublished EventType = "content.published"
	BotCreated       EventType = "bot.created"
	BotRemoved       EventType = "bot.removed"
	MeetingCreated   EventType = "meeting.created"
)

const (
	SourceAPI     = "api"
	SchemaVersion = "1.0"
)

// BaseEvent is embedded in every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// NewBaseEvent stamps a fresh id and time for an event of type t.
func NewBaseEvent(t EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      t,
		Timestamp: time.Now(),
		Source:    SourceAPI,
		Version:   SchemaVersion,
	}
}

func (e BaseEvent) GetType() EventType {
	return e.Type
}

// ContentGeneratedEvent is emitted after a generated content record is stored.
type ContentGeneratedEvent struct {
	BaseEvent
	ContentID   primitive.ObjectID  `json:"content_id"`
	MeetingID   *primitive.ObjectID `json:"meeting_id,omitempty"`
	UserID      primitive.ObjectID  `json:"user_id"`
	Title       string              `json:"title"`
	ContentType string              `json:"content_type"`
	Provider    string              `json:"provider"`
	ModelName   string              `json:"model_name"`
}

type ContentPublishedEvent struct {
	BaseEvent
	ContentID primitive.ObjectID `json:"content_id"`
	Platform  string             `json:"platform"`
	URL       string             `json:"url"`
}

type BotCreatedEvent struct {
	BaseEvent
	BotID      string `json:"bot_id"`
	MeetingURL string `json:"meeting_url"`
	Status     string `json:"status"`
}

type BotRemovedEvent struct {
	BaseEvent
	BotID string `json:"bot_id"`
}

type MeetingCreatedEvent struct {
	BaseEvent
	MeetingID   primitive.ObjectID `json:"meeting_id"`
	ExternalID  string             `json:"external_id"`
	Topics      []string           `json:"topics"`
	ActionItems int                `json:"action_items"`
}

// DeserializeEvent decodes data into the struct registered for eventType.
func DeserializeEvent(eventType EventType, data []byte) (any, error) {
	var event any

	switch eventType {
	case ContentGenerated:
		event = &ContentGeneratedEvent{}
	case ContentPublished:
		event = &ContentPublishedEvent{}
	case BotCreated:
		event = &BotCreatedEvent{}
	case BotRemoved:
		event = &BotRemovedEvent{}
	case MeetingCreated:
		event = &MeetingCreatedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}
