package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"content-rebirth/models"
)

type AILogRepository struct {
	col *mongo.Collection
}

func NewAILogRepository(db *mongo.Database) *AILogRepository {
	return &AILogRepository{col: db.Collection("ai_logs")}
}

func (r *AILogRepository) Insert(ctx context.Context, entry models.AILog) error {
	if entry.RequestedAt.IsZero() {
		entry.RequestedAt = time.Now()
	}
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, entry)
	return err
}
