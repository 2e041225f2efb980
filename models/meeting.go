package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MeetingStatus string

const (
	MeetingStatusProcessing MeetingStatus = "PROCESSING"
	MeetingStatusCompleted  MeetingStatus = "COMPLETED"
	MeetingStatusFailed     MeetingStatus = "FAILED"
	MeetingStatusCancelled  MeetingStatus = "CANCELLED"
)

// MeetingMetadata is derived from the transcript when a meeting is stored.
type MeetingMetadata struct {
	Topics            []string       `bson:"topics" json:"topics"`
	ActionItems       []string       `bson:"action_items" json:"actionItems"`
	DurationFormatted string         `bson:"duration_formatted" json:"durationFormatted"`
	Extra             map[string]any `bson:"extra,omitempty" json:"extra,omitempty"`
}

// Meeting is a stored transcript with its derived metadata.
// Collection: meetings
type Meeting struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	MeetingID    string             `bson:"meeting_id" json:"meetingId"`
	Transcript   string             `bson:"transcript" json:"transcript"`
	Duration     int64              `bson:"duration" json:"duration"`
	Participants []string           `bson:"participants" json:"participants"`
	Status       MeetingStatus      `bson:"status" json:"status"`
	Metadata     MeetingMetadata    `bson:"metadata" json:"metadata"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
