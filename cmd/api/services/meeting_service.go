package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content-rebirth/cmd/api/trace"
	"content-rebirth/config"
	"content-rebirth/models"
	"content-rebirth/transcript"
)

type MeetingService struct {
	meetings  MeetingStore
	analytics AnalyticsStore
	events    *EventDispatcher
	userID    primitive.ObjectID
}

func NewMeetingService(meetings MeetingStore, analytics AnalyticsStore, events *EventDispatcher, userID primitive.ObjectID) *MeetingService {
	if events == nil {
		events = NewEventDispatcher(nil)
	}
	return &MeetingService{meetings: meetings, analytics: analytics, events: events, userID: userID}
}

type CreateMeetingInput struct {
	Title        string
	Description  string
	MeetingID    string
	Transcript   string
	Duration     int64
	Participants []string
	Metadata     map[string]any
}

// Create stores a finished meeting with topics, action items and duration
// derived from its transcript.
func (s *MeetingService) Create(ctx context.Context, in CreateMeetingInput) (*models.Meeting, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.MeetingID) == "" || strings.TrimSpace(in.Transcript) == "" {
		return nil, validationError("title, meetingId and transcript are required")
	}
	participants := in.Participants
	if participants == nil {
		participants = []string{}
	}

	topics := transcript.ExtractTopics(in.Transcript)
	actionItems := transcript.ExtractActionItems(in.Transcript)
	m := &models.Meeting{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		MeetingID:    strings.TrimSpace(in.MeetingID),
		Transcript:   in.Transcript,
		Duration:     in.Duration,
		Participants: participants,
		Status:       models.MeetingStatusCompleted,
		Metadata: models.MeetingMetadata{
			Topics:            topics,
			ActionItems:       actionItems,
			DurationFormatted: transcript.FormatDuration(in.Duration),
			Extra:             in.Metadata,
		},
		UserID: s.userID,
	}
	if _, err := s.meetings.Insert(ctx, m); err != nil {
		config.ErrorWithFields("meeting insert failed", trace.WithFields(ctx, config.Fields{"meeting_id": m.MeetingID, "error": err.Error()}))
		return nil, persistenceError("failed to create meeting", err)
	}

	recordAnalytics(ctx, s.analytics, models.AnalyticsRealTimeStats, s.userID, nil, map[string]any{
		"meetingId":    m.ID.Hex(),
		"duration":     m.Duration,
		"participants": len(participants),
		"topics":       topics,
		"actionItems":  actionItems,
		"wordCount":    transcript.WordCount(in.Transcript),
	})
	s.events.PublishMeetingCreated(ctx, m)
	return m, nil
}

// List returns up to limit meetings, newest first.
func (s *MeetingService) List(ctx context.Context, limit int64) ([]models.Meeting, error) {
	meetings, err := s.meetings.ListByUser(ctx, s.userID, limit)
	if err != nil {
		return nil, persistenceError("failed to fetch meetings", err)
	}
	return meetings, nil
}
