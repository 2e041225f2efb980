package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AnalyticsType string

const (
	AnalyticsContentView       AnalyticsType = "CONTENT_VIEW"
	AnalyticsContentEngagement AnalyticsType = "CONTENT_ENGAGEMENT"
	AnalyticsGenerationSuccess AnalyticsType = "GENERATION_SUCCESS"
	AnalyticsPopularTopics     AnalyticsType = "POPULAR_TOPICS"
	AnalyticsRealTimeStats     AnalyticsType = "REAL_TIME_STATS"
)

// Analytics is a coarse counter/event record.
// Collection: analytics
type Analytics struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Type      AnalyticsType       `bson:"type" json:"type"`
	Data      map[string]any      `bson:"data" json:"data"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"userId"`
	ContentID *primitive.ObjectID `bson:"content_id,omitempty" json:"contentId,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}

// DashboardStats aggregates per-user totals for the dashboard.
type DashboardStats struct {
	TotalMeetings    int64 `json:"totalMeetings"`
	TotalContent     int64 `json:"totalContent"`
	PublishedContent int64 `json:"publishedContent"`
	TotalViews       int64 `json:"totalViews"`
}
