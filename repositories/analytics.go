package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"content-rebirth/models"
)

type AnalyticsRepository struct {
	col *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{col: db.Collection("analytics")}
}

func (r *AnalyticsRepository) Insert(ctx context.Context, a models.Analytics) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}
