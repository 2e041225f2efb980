package dto

import (
	"encoding/json"
	"time"

	"content-rebirth/models"
)

// CreateBotRequest is the body of POST /bots.
type CreateBotRequest struct {
	MeetingURL        string `json:"meeting_url" example:"https://meet.google.com/abc-defg-hij"`
	Name              string `json:"name" example:"Weekly sync bot"`
	AudioRequired     *bool  `json:"audio_required,omitempty"`
	TranscriptionType string `json:"transcription_type,omitempty" example:"post_meeting"`
}

// BotDTO is the wire form of a stored bot.
type BotDTO struct {
	BotID             string    `json:"bot_id"`
	Name              string    `json:"name"`
	MeetingURL        string    `json:"meeting_url"`
	Status            string    `json:"status"`
	TranscriptID      string    `json:"transcript_id,omitempty"`
	TranscriptionType string    `json:"transcription_type"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func BotFromModel(b models.Bot) BotDTO {
	return BotDTO{
		BotID:             b.BotID,
		Name:              b.Name,
		MeetingURL:        b.MeetingURL,
		Status:            string(b.Status),
		TranscriptID:      b.TranscriptID,
		TranscriptionType: string(b.TranscriptionType),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// TranscriptDTO passes the provider transcript through untouched.
type TranscriptDTO struct {
	BotID      string          `json:"bot_id"`
	Transcript json.RawMessage `json:"transcript" swaggertype:"object"`
}
