package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-rebirth/cmd/api/clients/meetstreamclient"
	"content-rebirth/events"
	"content-rebirth/models"
)

func newBotFixture(store *fakeBotStore, provider *fakeBotProvider) (*BotService, *fakeBus) {
	bus := &fakeBus{}
	return NewBotService(store, provider, NewEventDispatcher(bus), testUserID), bus
}

func TestCreateBotValidation(t *testing.T) {
	testCases := []struct {
		name string
		in   CreateBotInput
	}{
		{"missing url", CreateBotInput{Name: "bot"}},
		{"blank url", CreateBotInput{MeetingURL: "   ", Name: "bot"}},
		{"relative url", CreateBotInput{MeetingURL: "meet/abc", Name: "bot"}},
		{"missing name", CreateBotInput{MeetingURL: "https://meet.google.com/abc"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			provider := &fakeBotProvider{}
			svc, _ := newBotFixture(newFakeBotStore(), provider)

			_, err := svc.Create(context.Background(), testCase.in)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, provider.createIn)
		})
	}
}

func TestCreateBotStoresNormalizedStatus(t *testing.T) {
	store := newFakeBotStore()
	provider := &fakeBotProvider{created: meetstreamclient.Bot{BotID: "bot_1", Status: "connected", TranscriptID: "tr_1"}}
	svc, bus := newBotFixture(store, provider)

	b, err := svc.Create(context.Background(), CreateBotInput{
		MeetingURL:        " https://meet.google.com/abc ",
		Name:              "Sync bot",
		TranscriptionType: "realtime",
	})
	require.NoError(t, err)

	assert.Equal(t, "bot_1", b.BotID)
	assert.Equal(t, models.BotStatusActive, b.Status)
	assert.Equal(t, models.TranscriptionRealtime, b.TranscriptionType)
	assert.Equal(t, "tr_1", b.TranscriptID)
	assert.Equal(t, testUserID, b.UserID)
	assert.Contains(t, store.bots, "bot_1")

	require.NotNil(t, provider.createIn)
	assert.Equal(t, "https://meet.google.com/abc", provider.createIn.MeetingURL)
	assert.Equal(t, models.TranscriptionRealtime, provider.createIn.TranscriptionType)
	assert.Equal(t, []string{string(events.BotCreated)}, bus.types())
}

func TestCreateBotUnknownStatusIsJoining(t *testing.T) {
	provider := &fakeBotProvider{created: meetstreamclient.Bot{BotID: "bot_2", Status: "in_waiting_room"}}
	svc, _ := newBotFixture(newFakeBotStore(), provider)

	b, err := svc.Create(context.Background(), CreateBotInput{MeetingURL: "https://zoom.us/j/1", Name: "bot"})
	require.NoError(t, err)
	assert.Equal(t, models.BotStatusJoining, b.Status)
	assert.Equal(t, models.TranscriptionPostMeeting, b.TranscriptionType)
}

func TestCreateBotProviderFailure(t *testing.T) {
	store := newFakeBotStore()
	provider := &fakeBotProvider{createErr: &meetstreamclient.HTTPError{StatusCode: http.StatusBadGateway, Body: "upstream down"}}
	svc, _ := newBotFixture(store, provider)

	_, err := svc.Create(context.Background(), CreateBotInput{MeetingURL: "https://zoom.us/j/1", Name: "bot"})

	require.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "upstream down")
	assert.Empty(t, store.bots)
}

func TestCreateBotWithoutBotID(t *testing.T) {
	svc, _ := newBotFixture(newFakeBotStore(), &fakeBotProvider{created: meetstreamclient.Bot{Status: "joining"}})
	_, err := svc.Create(context.Background(), CreateBotInput{MeetingURL: "https://zoom.us/j/1", Name: "bot"})
	assert.ErrorIs(t, err, ErrProvider)
}

func TestCreateBotCompensatesOnInsertFailure(t *testing.T) {
	store := newFakeBotStore()
	store.insertErr = errors.New("duplicate key")
	provider := &fakeBotProvider{created: meetstreamclient.Bot{BotID: "bot_3", Status: "joining"}}
	svc, bus := newBotFixture(store, provider)

	_, err := svc.Create(context.Background(), CreateBotInput{MeetingURL: "https://zoom.us/j/1", Name: "bot"})

	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, []string{"bot_3"}, provider.removed)
	assert.Empty(t, bus.types())
}

func TestDeleteBotMissingLocally(t *testing.T) {
	provider := &fakeBotProvider{}
	svc, _ := newBotFixture(newFakeBotStore(), provider)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, provider.removed)
}

func TestDeleteBotExternalFailureKeepsRecord(t *testing.T) {
	store := newFakeBotStore(models.Bot{BotID: "bot_1", Status: models.BotStatusActive})
	provider := &fakeBotProvider{removeErr: errors.New("timeout")}
	svc, bus := newBotFixture(store, provider)

	err := svc.Delete(context.Background(), "bot_1")

	require.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, store.bots, "bot_1")
	assert.Empty(t, bus.types())
}

func TestDeleteBot(t *testing.T) {
	store := newFakeBotStore(models.Bot{BotID: "bot_1"})
	provider := &fakeBotProvider{}
	svc, bus := newBotFixture(store, provider)

	require.NoError(t, svc.Delete(context.Background(), "bot_1"))

	assert.Equal(t, []string{"bot_1"}, provider.removed)
	assert.NotContains(t, store.bots, "bot_1")
	assert.Equal(t, []string{string(events.BotRemoved)}, bus.types())
}

func TestDeleteBotLocalFailureAfterRemoval(t *testing.T) {
	store := newFakeBotStore(models.Bot{BotID: "bot_1"})
	store.deleteErr = errors.New("write concern")
	svc, _ := newBotFixture(store, &fakeBotProvider{})

	err := svc.Delete(context.Background(), "bot_1")
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestSyncBot(t *testing.T) {
	store := newFakeBotStore(models.Bot{BotID: "bot_1", Status: models.BotStatusJoining})
	provider := &fakeBotProvider{detail: meetstreamclient.Bot{BotID: "bot_1", Status: "Disconnected", TranscriptID: "tr_9"}}
	svc, _ := newBotFixture(store, provider)

	b, err := svc.Sync(context.Background(), "bot_1")
	require.NoError(t, err)
	assert.Equal(t, models.BotStatusInactive, b.Status)
	assert.Equal(t, "tr_9", b.TranscriptID)

	_, err = svc.Sync(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBotTranscript(t *testing.T) {
	provider := &fakeBotProvider{transcript: json.RawMessage(`{"segments":[]}`)}
	svc, _ := newBotFixture(newFakeBotStore(), provider)

	raw, err := svc.Transcript(context.Background(), "bot_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"segments":[]}`, string(raw))

	provider.fetchErr = &meetstreamclient.HTTPError{StatusCode: http.StatusNotFound}
	_, err = svc.Transcript(context.Background(), "bot_1")
	assert.ErrorIs(t, err, ErrNotFound)

	provider.fetchErr = meetstreamclient.ErrInvalidBotID
	_, err = svc.Transcript(context.Background(), "a/b")
	assert.ErrorIs(t, err, ErrValidation)

	provider.fetchErr = meetstreamclient.ErrNotConfigured
	_, err = svc.Transcript(context.Background(), "bot_1")
	assert.ErrorIs(t, err, ErrProvider)

	_, err = svc.Transcript(context.Background(), " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBotStatsAndList(t *testing.T) {
	store := newFakeBotStore(
		models.Bot{BotID: "a", Status: models.BotStatusActive},
		models.Bot{BotID: "b", Status: models.BotStatusActive},
		models.Bot{BotID: "c", Status: models.BotStatusError},
	)
	svc, _ := newBotFixture(store, &fakeBotProvider{})

	bots, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, bots, 3)

	counts, err := svc.Stats(context.Background())
	require.NoError(t, err)
	byStatus := map[models.BotStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, map[models.BotStatus]int64{models.BotStatusActive: 2, models.BotStatusError: 1}, byStatus)
}
