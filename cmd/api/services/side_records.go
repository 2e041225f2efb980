package services

import (
	"context"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content-rebirth/cmd/api/trace"
	"content-rebirth/config"
	"content-rebirth/generator"
	"content-rebirth/models"
)

const aiLogExcerptRunes = 500

// recordAnalytics stores an analytics row. Failures are logged only.
func recordAnalytics(ctx context.Context, store AnalyticsStore, t models.AnalyticsType, userID primitive.ObjectID, contentID *primitive.ObjectID, data map[string]any) {
	if store == nil {
		return
	}
	err := store.Insert(ctx, models.Analytics{
		Type:      t,
		Data:      data,
		UserID:    userID,
		ContentID: contentID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		config.ErrorWithFields("analytics insert failed", trace.WithFields(ctx, config.Fields{
			"analytics_type": string(t),
			"error":          err.Error(),
		}))
	}
}

// usage describes one provider call for the ai_logs collection.
type usage struct {
	provider    string
	purpose     string
	maxTokens   int
	requestedAt time.Time
	completion  *generator.Completion
	contentID   *primitive.ObjectID
	err         error
}

// recordUsage stores an AI usage row. Failures are logged only.
func recordUsage(ctx context.Context, store AILogStore, u usage) {
	if store == nil {
		return
	}
	entry := models.AILog{
		Provider:    u.provider,
		Purpose:     u.purpose,
		ContentID:   u.contentID,
		MaxTokens:   u.maxTokens,
		RequestedAt: u.requestedAt,
		CompletedAt: time.Now(),
	}
	entry.DurationMs = entry.CompletedAt.Sub(u.requestedAt).Milliseconds()
	if c := u.completion; c != nil {
		entry.ModelName = c.ModelName
		entry.ModelVersion = c.ModelVersion
		entry.InputTokens = c.InputTokens
		entry.OutputTokens = c.OutputTokens
		entry.TotalTokens = c.TotalTokens
		entry.OutputExcerpt = excerpt(c.Text, aiLogExcerptRunes)
		if c.Duration > 0 {
			entry.DurationMs = c.Duration.Milliseconds()
		}
	}
	if u.err != nil {
		msg := u.err.Error()
		entry.ErrorMessage = &msg
	}
	if err := store.Insert(ctx, entry); err != nil {
		config.ErrorWithFields("ai log insert failed", trace.WithFields(ctx, config.Fields{
			"purpose": u.purpose,
			"error":   err.Error(),
		}))
	}
}

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
