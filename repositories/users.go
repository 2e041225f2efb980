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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// EnsureUser inserts u unless a user with the same id already exists.
func (r *UserRepository) EnsureUser(ctx context.Context, u models.User) error {
	now := time.Now()
	if u.Role == "" {
		u.Role = models.UserRoleUser
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{
		"$setOnInsert": bson.M{
			"email":      u.Email,
			"name":       u.Name,
			"role":       u.Role,
			"created_at": now,
			"updated_at": now,
		},
	}, options.Update().SetUpsert(true))
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
