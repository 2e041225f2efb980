package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AILog records one generation call for usage monitoring.
// Collection: ai_logs
type AILog struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Provider      string              `bson:"provider" json:"provider"`
	ModelName     string              `bson:"model_name" json:"model_name"`
	ModelVersion  string              `bson:"model_version" json:"model_version"`
	Purpose       string              `bson:"purpose" json:"purpose"`
	ContentID     *primitive.ObjectID `bson:"content_id,omitempty" json:"content_id,omitempty"`
	MaxTokens     int                 `bson:"max_tokens" json:"max_tokens"`
	InputTokens   int64               `bson:"input_tokens" json:"input_tokens"`
	OutputTokens  int64               `bson:"output_tokens" json:"output_tokens"`
	TotalTokens   int64               `bson:"total_tokens" json:"total_tokens"`
	DurationMs    int64               `bson:"duration_ms" json:"duration_ms"`
	ErrorMessage  *string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	OutputExcerpt string              `bson:"output_excerpt" json:"output_excerpt"`
	RequestedAt   time.Time           `bson:"requested_at" json:"requested_at"`
	CompletedAt   time.Time           `bson:"completed_at" json:"completed_at"`
}
