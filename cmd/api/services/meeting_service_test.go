package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-rebirth/events"
	"content-rebirth/models"
)

func TestCreateMeetingValidation(t *testing.T) {
	store := &fakeMeetingStore{}
	svc := NewMeetingService(store, &fakeAnalyticsStore{}, nil, testUserID)

	for _, in := range []CreateMeetingInput{
		{MeetingID: "m1", Transcript: "x"},
		{Title: "t", Transcript: "x"},
		{Title: "t", MeetingID: "m1", Transcript: "  "},
	} {
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, store.meetings)
}

func TestCreateMeeting(t *testing.T) {
	store := &fakeMeetingStore{}
	analytics := &fakeAnalyticsStore{}
	bus := &fakeBus{}
	svc := NewMeetingService(store, analytics, NewEventDispatcher(bus), testUserID)

	m, err := svc.Create(context.Background(), CreateMeetingInput{
		Title:        "Budget sync",
		MeetingID:    "bot_1",
		Transcript:   "We need to cut the budget. Marketing budget review.",
		Duration:     3900,
		Participants: []string{"alice", "bob"},
		Metadata:     map[string]any{"source": "meetstream"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.MeetingStatusCompleted, m.Status)
	assert.Equal(t, "1h 5m", m.Metadata.DurationFormatted)
	assert.Equal(t, []string{"budget", "marketing", "review"}, m.Metadata.Topics)
	assert.Equal(t, []string{"need to cut the budget."}, m.Metadata.ActionItems)
	assert.Equal(t, "meetstream", m.Metadata.Extra["source"])
	assert.Equal(t, testUserID, m.UserID)

	require.Len(t, analytics.rows, 1)
	row := analytics.rows[0]
	assert.Equal(t, models.AnalyticsRealTimeStats, row.Type)
	assert.Equal(t, m.ID.Hex(), row.Data["meetingId"])
	assert.Equal(t, 2, row.Data["participants"])
	assert.Equal(t, 9, row.Data["wordCount"])
	assert.Equal(t, []string{string(events.MeetingCreated)}, bus.types())
}

func TestCreateMeetingPersistenceFailure(t *testing.T) {
	store := &fakeMeetingStore{insertErr: errors.New("boom")}
	analytics := &fakeAnalyticsStore{}
	svc := NewMeetingService(store, analytics, nil, testUserID)

	_, err := svc.Create(context.Background(), CreateMeetingInput{Title: "t", MeetingID: "m", Transcript: "x"})

	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, analytics.rows)
}

func TestListMeetings(t *testing.T) {
	store := &fakeMeetingStore{meetings: []*models.Meeting{{Title: "a"}, {Title: "b"}}}
	svc := NewMeetingService(store, nil, nil, testUserID)

	meetings, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, meetings, 2)
	assert.EqualValues(t, 10, store.limit)
}

func TestDashboardStats(t *testing.T) {
	meetings := &fakeMeetingStore{meetings: []*models.Meeting{{}, {}, {}}}
	contents := newFakeContentStore()
	contents.counts[""] = 5
	contents.counts[models.ContentStatusPublished] = 2
	contents.views = 40

	stats, err := NewDashboardService(meetings, contents, testUserID).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{TotalMeetings: 3, TotalContent: 5, PublishedContent: 2, TotalViews: 40}, stats)
}
