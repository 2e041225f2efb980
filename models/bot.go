package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BotStatus string

const (
	BotStatusJoining      BotStatus = "JOINING"
	BotStatusActive       BotStatus = "ACTIVE"
	BotStatusInactive     BotStatus = "INACTIVE"
	BotStatusConnected    BotStatus = "CONNECTED"
	BotStatusDisconnected BotStatus = "DISCONNECTED"
	BotStatusError        BotStatus = "ERROR"
)

// botStatusAliases maps lower-cased provider status strings to the stored
// enum. Anything not listed normalizes to JOINING.
var botStatusAliases = map[string]BotStatus{
	"active":       BotStatusActive,
	"connected":    BotStatusActive,
	"joining":      BotStatusJoining,
	"inactive":     BotStatusInactive,
	"disconnected": BotStatusInactive,
	"error":        BotStatusError,
}

// NormalizeBotStatus converts a free-form provider status into a BotStatus.
// It is defined for every input.
func NormalizeBotStatus(providerStatus string) BotStatus {
	if s, ok := botStatusAliases[strings.ToLower(strings.TrimSpace(providerStatus))]; ok {
		return s
	}
	return BotStatusJoining
}

type TranscriptionType string

const (
	TranscriptionRealtime    TranscriptionType = "REALTIME"
	TranscriptionPostMeeting TranscriptionType = "POST_MEETING"
)

// ParseTranscriptionType maps the request value ("realtime" / "post_meeting")
// to the stored enum, defaulting to POST_MEETING.
func ParseTranscriptionType(v string) TranscriptionType {
	if strings.EqualFold(strings.TrimSpace(v), "realtime") {
		return TranscriptionRealtime
	}
	return TranscriptionPostMeeting
}

// Bot mirrors a Meetstream transcription bot.
// Collection: bots
type Bot struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BotID             string             `bson:"bot_id" json:"bot_id"`
	Name              string             `bson:"name" json:"name"`
	MeetingURL        string             `bson:"meeting_url" json:"meeting_url"`
	Status            BotStatus          `bson:"status" json:"status"`
	TranscriptID      string             `bson:"transcript_id,omitempty" json:"transcript_id,omitempty"`
	TranscriptionType TranscriptionType  `bson:"transcription_type" json:"transcription_type"`
	UserID            primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// BotStatusCount is one row of the per-status bot statistics.
type BotStatusCount struct {
	Status BotStatus `bson:"_id" json:"status"`
	Count  int64     `bson:"count" json:"count"`
}
