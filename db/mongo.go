package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"content-rebirth/config"
)

const (
	CollectionContents  = "contents"
	CollectionBots      = "bots"
	CollectionMeetings  = "meetings"
	CollectionAnalytics = "analytics"
	CollectionUsers     = "users"
	CollectionAILogs    = "ai_logs"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig()
		uri := cfg.Mongo.URI
		if uri == "" {
			// local docker-compose default
			uri = "mongodb://localhost:27017/content_rebirth"
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(cfg.Mongo.DBName)

		if err := EnsureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		config.Logger.Info("MongoDB connected and indexes ensured")
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

// Ping reports whether the primary is reachable.
func Ping(ctx context.Context) error {
	if client == nil {
		return mongo.ErrClientDisconnected
	}
	return client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the global client.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

var indexPlan = []collectionIndexes{
	{CollectionContents, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_type_category"),
		},
	}},
	{CollectionBots, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bot_id", Value: 1}},
			Options: options.Index().SetName("uniq_bot_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created_desc"),
		},
	}},
	{CollectionMeetings, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "meeting_id", Value: 1}},
			Options: options.Index().SetName("idx_meeting_id"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_desc"),
		},
	}},
	{CollectionAnalytics, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_type_created_desc"),
		},
	}},
	{CollectionUsers, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
	}},
	{CollectionAILogs, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "requested_at", Value: -1}},
			Options: options.Index().SetName("idx_requested_desc"),
		},
	}},
}

// EnsureIndexes creates the indexes every collection relies on.
func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	for _, ci := range indexPlan {
		if _, err := d.Collection(ci.collection).Indexes().CreateMany(ctx, ci.models); err != nil {
			return err
		}
	}
	return nil
}
