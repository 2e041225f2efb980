package services

import (
	"context"

	"content-rebirth/cmd/api/trace"
	"content-rebirth/config"
	"content-rebirth/eventbus"
	"content-rebirth/events"
	"content-rebirth/models"
)

// EventDispatcher publishes domain events. Publishing is best effort:
// failures are logged and never returned to the caller of a service.
type EventDispatcher struct {
	bus eventbus.EventBus
}

func NewEventDispatcher(bus eventbus.EventBus) *EventDispatcher {
	if bus == nil {
		bus = eventbus.NoopEventBus{}
	}
	return &EventDispatcher{bus: bus}
}

func (d *EventDispatcher) PublishContentGenerated(ctx context.Context, c *models.Content, provider, modelName string) {
	e := events.ContentGeneratedEvent{
		BaseEvent:   events.NewBaseEvent(events.ContentGenerated),
		ContentID:   c.ID,
		MeetingID:   c.MeetingID,
		UserID:      c.UserID,
		Title:       c.Title,
		ContentType: string(c.Type),
		Provider:    provider,
		ModelName:   modelName,
	}
	d.publish(ctx, e.BaseEvent, e)
}

func (d *EventDispatcher) PublishContentPublished(ctx context.Context, c *models.Content, platform, url string) {
	e := events.ContentPublishedEvent{
		BaseEvent: events.NewBaseEvent(events.ContentPublished),
		ContentID: c.ID,
		Platform:  platform,
		URL:       url,
	}
	d.publish(ctx, e.BaseEvent, e)
}

func (d *EventDispatcher) PublishBotCreated(ctx context.Context, b *models.Bot) {
	e := events.BotCreatedEvent{
		BaseEvent:  events.NewBaseEvent(events.BotCreated),
		BotID:      b.BotID,
		MeetingURL: b.MeetingURL,
		Status:     string(b.Status),
	}
	d.publish(ctx, e.BaseEvent, e)
}

func (d *EventDispatcher) PublishBotRemoved(ctx context.Context, botID string) {
	e := events.BotRemovedEvent{
		BaseEvent: events.NewBaseEvent(events.BotRemoved),
		BotID:     botID,
	}
	d.publish(ctx, e.BaseEvent, e)
}

func (d *EventDispatcher) PublishMeetingCreated(ctx context.Context, m *models.Meeting) {
	e := events.MeetingCreatedEvent{
		BaseEvent:   events.NewBaseEvent(events.MeetingCreated),
		MeetingID:   m.ID,
		ExternalID:  m.MeetingID,
		Topics:      m.Metadata.Topics,
		ActionItems: len(m.Metadata.ActionItems),
	}
	d.publish(ctx, e.BaseEvent, e)
}

func (d *EventDispatcher) publish(ctx context.Context, base events.BaseEvent, payload any) {
	evt, err := eventbus.NewJSONEvent(base.ID, string(base.Type), payload)
	if err == nil {
		err = d.bus.Publish(ctx, eventbus.TopicDomainEvents.Base(), evt)
	}
	if err != nil {
		config.ErrorWithFields("event publish failed", trace.WithFields(ctx, config.Fields{
			"event_id":   base.ID,
			"event_type": string(base.Type),
			"error":      err.Error(),
		}))
	}
}
