package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"content-rebirth/models"
)

type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection("contents")}
}

// Insert stores a new content document and returns its id.
func (r *ContentRepository) Insert(ctx context.Context, c *models.Content) (primitive.ObjectID, error) {
	now := time.Now()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = models.ContentStatusDraft
	}
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return primitive.NilObjectID, err
	}
	return c.ID, nil
}

// FindByID returns a content by its ObjectID
func (r *ContentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Content, error) {
	var c models.Content
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementViews adds one view and returns the updated document.
// mongo.ErrNoDocuments is returned when the id does not exist.
func (r *ContentRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Content, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Content
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"view_count": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}, opts).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStatus sets the status and returns the updated document. Moving to
// PUBLISHED also stamps published_at.
func (r *ContentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ContentStatus) (*models.Content, error) {
	now := time.Now()
	set := bson.M{"status": status, "updated_at": now}
	if status == models.ContentStatusPublished {
		set["published_at"] = now
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Content
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

type ListContentOptions struct {
	Page     int
	PageSize int
	UserID   *primitive.ObjectID
	Type     models.ContentType
	Category string
	Status   models.ContentStatus
}

// List returns contents with filters and pagination, newest first.
func (r *ContentRepository) List(ctx context.Context, opt ListContentOptions) ([]models.Content, int64, error) {
	filter := bson.M{}
	if opt.UserID != nil {
		filter["user_id"] = *opt.UserID
	}
	if opt.Type != "" {
		filter["type"] = opt.Type
	}
	if opt.Status != "" {
		filter["status"] = opt.Status
	}
	if opt.Category != "" {
		filter["category"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(opt.Category) + "$", Options: "i"}
	}

	if opt.Page <= 0 {
		opt.Page = 1
	}
	if opt.PageSize <= 0 || opt.PageSize > 100 {
		opt.PageSize = 20
	}
	skip := int64((opt.Page - 1) * opt.PageSize)
	limit := int64(opt.PageSize)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	results := []models.Content{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// CountByUser counts a user's contents, optionally restricted to one status.
func (r *ContentRepository) CountByUser(ctx context.Context, userID primitive.ObjectID, status models.ContentStatus) (int64, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	return r.col.CountDocuments(ctx, filter)
}

// SumViews totals view_count over a user's contents.
func (r *ContentRepository) SumViews(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$view_count"}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
