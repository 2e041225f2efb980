package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content-rebirth/cmd/api/clients/meetstreamclient"
	"content-rebirth/cmd/api/trace"
	"content-rebirth/config"
	"content-rebirth/models"
)

// BotService drives transcription bots on the provider and mirrors them in
// the bots collection.
type BotService struct {
	bots     BotStore
	provider BotProvider
	events   *EventDispatcher
	userID   primitive.ObjectID
}

func NewBotService(bots BotStore, provider BotProvider, events *EventDispatcher, userID primitive.ObjectID) *BotService {
	if events == nil {
		events = NewEventDispatcher(nil)
	}
	return &BotService{bots: bots, provider: provider, events: events, userID: userID}
}

type CreateBotInput struct {
	MeetingURL        string
	Name              string
	AudioRequired     *bool
	TranscriptionType string
}

// Create sends a bot into the meeting and stores it. When the local insert
// fails the external bot is removed again.
func (s *BotService) Create(ctx context.Context, in CreateBotInput) (*models.Bot, error) {
	meetingURL := strings.TrimSpace(in.MeetingURL)
	name := strings.TrimSpace(in.Name)
	if meetingURL == "" {
		return nil, validationError("meeting_url is required")
	}
	if !validMeetingURL(meetingURL) {
		return nil, validationError("meeting_url must be an absolute http(s) URL")
	}
	if name == "" {
		return nil, validationError("name is required")
	}
	transcriptionType := models.ParseTranscriptionType(in.TranscriptionType)

	ext, err := s.provider.CreateBot(ctx, meetstreamclient.CreateBotInput{
		MeetingURL:        meetingURL,
		Name:              name,
		AudioRequired:     in.AudioRequired,
		TranscriptionType: transcriptionType,
	})
	if err != nil {
		config.ErrorWithFields("bot create failed", trace.WithFields(ctx, config.Fields{"meeting_url": meetingURL, "error": err.Error()}))
		return nil, meetstreamError("failed to create bot", err)
	}
	if ext.BotID == "" {
		return nil, &ServiceError{Kind: KindProvider, Message: "failed to create bot: provider returned no bot_id"}
	}

	bot := &models.Bot{
		BotID:             ext.BotID,
		Name:              name,
		MeetingURL:        meetingURL,
		Status:            models.NormalizeBotStatus(ext.Status),
		TranscriptID:      ext.TranscriptID,
		TranscriptionType: transcriptionType,
		UserID:            s.userID,
	}
	if _, err := s.bots.Insert(ctx, bot); err != nil {
		config.ErrorWithFields("bot insert failed, removing external bot", trace.WithFields(ctx, config.Fields{"bot_id": ext.BotID, "error": err.Error()}))
		if rmErr := s.provider.RemoveBot(ctx, ext.BotID); rmErr != nil {
			config.ErrorWithFields("bot compensation failed", trace.WithFields(ctx, config.Fields{"bot_id": ext.BotID, "error": rmErr.Error()}))
		}
		return nil, persistenceError("failed to save bot", err)
	}

	s.events.PublishBotCreated(ctx, bot)
	config.InfoWithFields("bot created", trace.WithFields(ctx, config.Fields{"bot_id": bot.BotID, "status": string(bot.Status)}))
	return bot, nil
}

func validMeetingURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Get returns the stored bot.
func (s *BotService) Get(ctx context.Context, botID string) (*models.Bot, error) {
	b, err := s.bots.FindByBotID(ctx, strings.TrimSpace(botID))
	if err != nil {
		return nil, storeError("bot not found", "failed to load bot", err)
	}
	return b, nil
}

func (s *BotService) List(ctx context.Context) ([]models.Bot, error) {
	bots, err := s.bots.ListByUser(ctx, s.userID)
	if err != nil {
		return nil, persistenceError("failed to list bots", err)
	}
	return bots, nil
}

// Sync refreshes the stored status and transcript id from the provider.
func (s *BotService) Sync(ctx context.Context, botID string) (*models.Bot, error) {
	local, err := s.Get(ctx, botID)
	if err != nil {
		return nil, err
	}
	ext, err := s.provider.GetBot(ctx, local.BotID)
	if err != nil {
		return nil, meetstreamError("failed to fetch bot", err)
	}
	updated, err := s.bots.UpdateState(ctx, local.BotID, models.NormalizeBotStatus(ext.Status), ext.TranscriptID)
	if err != nil {
		return nil, storeError("bot not found", "failed to update bot", err)
	}
	return updated, nil
}

// Delete removes the bot on the provider first and then locally. A provider
// failure leaves the stored bot untouched.
func (s *BotService) Delete(ctx context.Context, botID string) error {
	local, err := s.Get(ctx, botID)
	if err != nil {
		return err
	}
	if err := s.provider.RemoveBot(ctx, local.BotID); err != nil {
		config.ErrorWithFields("bot remove failed", trace.WithFields(ctx, config.Fields{"bot_id": local.BotID, "error": err.Error()}))
		return meetstreamError("failed to remove bot", err)
	}
	if err := s.bots.DeleteByBotID(ctx, local.BotID); err != nil {
		config.ErrorWithFields("bot delete failed after external removal", trace.WithFields(ctx, config.Fields{"bot_id": local.BotID, "error": err.Error()}))
		return storeError("bot not found", "failed to delete bot", err)
	}
	s.events.PublishBotRemoved(ctx, local.BotID)
	return nil
}

// Transcript fetches the provider transcript of a bot.
func (s *BotService) Transcript(ctx context.Context, botID string) (json.RawMessage, error) {
	botID = strings.TrimSpace(botID)
	if botID == "" {
		return nil, validationError("bot id is required")
	}
	raw, err := s.provider.GetTranscript(ctx, botID)
	if err != nil {
		config.ErrorWithFields("transcript fetch failed", trace.WithFields(ctx, config.Fields{"bot_id": botID, "error": err.Error()}))
		return nil, meetstreamError("failed to fetch transcript for bot "+botID, err)
	}
	return raw, nil
}

// Stats counts the default user's bots per status.
func (s *BotService) Stats(ctx context.Context) ([]models.BotStatusCount, error) {
	counts, err := s.bots.CountByStatus(ctx, s.userID)
	if err != nil {
		return nil, persistenceError("failed to count bots", err)
	}
	return counts, nil
}

// meetstreamError classifies a Meetstream client failure.
func meetstreamError(prefix string, err error) *ServiceError {
	if errors.Is(err, meetstreamclient.ErrInvalidBotID) {
		return &ServiceError{Kind: KindValidation, Message: prefix + ": " + err.Error(), Cause: err}
	}
	var httpErr *meetstreamclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return &ServiceError{Kind: KindNotFound, Message: prefix + ": bot not found on provider", Cause: err}
	}
	return providerError(prefix, err)
}
