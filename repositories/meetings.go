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

type MeetingRepository struct {
	col *mongo.Collection
}

func NewMeetingRepository(db *mongo.Database) *MeetingRepository {
	return &MeetingRepository{col: db.Collection("meetings")}
}

func (r *MeetingRepository) Insert(ctx context.Context, m *models.Meeting) (primitive.ObjectID, error) {
	now := time.Now()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return primitive.NilObjectID, err
	}
	return m.ID, nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error) {
	var m models.Meeting
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser returns up to limit meetings, newest first. limit <= 0 means
// no limit.
func (r *MeetingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	meetings := []models.Meeting{}
	if err := cur.All(ctx, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *MeetingRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}
