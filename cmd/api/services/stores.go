package services

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content-rebirth/cmd/api/clients/meetstreamclient"
	"content-rebirth/models"
	"content-rebirth/repositories"
)

// The interfaces below are satisfied by the repositories package and by the
// Meetstream client; services depend on them so tests can use fakes.

type ContentStore interface {
	Insert(ctx context.Context, c *models.Content) (primitive.ObjectID, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Content, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ContentStatus) (*models.Content, error)
	List(ctx context.Context, opt repositories.ListContentOptions) ([]models.Content, int64, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID, status models.ContentStatus) (int64, error)
	SumViews(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type BotStore interface {
	Insert(ctx context.Context, b *models.Bot) (primitive.ObjectID, error)
	FindByBotID(ctx context.Context, botID string) (*models.Bot, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Bot, error)
	UpdateState(ctx context.Context, botID string, status models.BotStatus, transcriptID string) (*models.Bot, error)
	DeleteByBotID(ctx context.Context, botID string) error
	CountByStatus(ctx context.Context, userID primitive.ObjectID) ([]models.BotStatusCount, error)
}

type MeetingStore interface {
	Insert(ctx context.Context, m *models.Meeting) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Meeting, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type AnalyticsStore interface {
	Insert(ctx context.Context, a models.Analytics) error
}

type AILogStore interface {
	Insert(ctx context.Context, entry models.AILog) error
}

// BotProvider is the external transcription bot API.
type BotProvider interface {
	CreateBot(ctx context.Context, in meetstreamclient.CreateBotInput) (meetstreamclient.Bot, error)
	GetBot(ctx context.Context, botID string) (meetstreamclient.Bot, error)
	RemoveBot(ctx context.Context, botID string) error
	GetTranscript(ctx context.Context, botID string) (json.RawMessage, error)
}

var (
	_ ContentStore   = (*repositories.ContentRepository)(nil)
	_ BotStore       = (*repositories.BotRepository)(nil)
	_ MeetingStore   = (*repositories.MeetingRepository)(nil)
	_ AnalyticsStore = (*repositories.AnalyticsRepository)(nil)
	_ AILogStore     = (*repositories.AILogRepository)(nil)
	_ BotProvider    = (*meetstreamclient.Client)(nil)
)
