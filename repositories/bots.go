package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"content-rebirth/models"
)

type BotRepository struct {
	col *mongo.Collection
}

func NewBotRepository(db *mongo.Database) *BotRepository {
	return &BotRepository{col: db.Collection("bots")}
}

func (r *BotRepository) Insert(ctx context.Context, b *models.Bot) (primitive.ObjectID, error) {
	now := time.Now()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return primitive.NilObjectID, err
	}
	return b.ID, nil
}

// FindByBotID returns the bot with the given Meetstream bot id.
func (r *BotRepository) FindByBotID(ctx context.Context, botID string) (*models.Bot, error) {
	var b models.Bot
	if err := r.col.FindOne(ctx, bson.M{"bot_id": botID}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns a user's bots, newest first.
func (r *BotRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Bot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bots := []models.Bot{}
	if err := cur.All(ctx, &bots); err != nil {
		return nil, err
	}
	return bots, nil
}

// UpdateState mirrors the provider's status and transcript id. An empty
// transcriptID leaves the stored one untouched.
func (r *BotRepository) UpdateState(ctx context.Context, botID string, status models.BotStatus, transcriptID string) (*models.Bot, error) {
	set := bson.M{"status": status, "updated_at": time.Now()}
	if transcriptID != "" {
		set["transcript_id"] = transcriptID
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Bot
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"bot_id": botID}, bson.M{"$set": set}, opts).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteByBotID removes the bot. mongo.ErrNoDocuments is returned when
// nothing matched.
func (r *BotRepository) DeleteByBotID(ctx context.Context, botID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"bot_id": botID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountByStatus groups a user's bots by status.
func (r *BotRepository) CountByStatus(ctx context.Context, userID primitive.ObjectID) ([]models.BotStatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := []models.BotStatusCount{}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
