package services

import (
	"context"
	"encoding/json"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"content-rebirth/cmd/api/clients/meetstreamclient"
	"content-rebirth/eventbus"
	"content-rebirth/generator"
	"content-rebirth/models"
	"content-rebirth/repositories"
)

var testUserID, _ = primitive.ObjectIDFromHex("507f1f77bcf86cd799439011")

type fakeProvider struct {
	text      string
	err       error
	calls     int
	prompt    string
	maxTokens int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Complete(ctx context.Context, prompt string, maxOutputTokens int) (*generator.Completion, error) {
	p.calls++
	p.prompt = prompt
	p.maxTokens = maxOutputTokens
	if p.err != nil {
		return nil, p.err
	}
	return &generator.Completion{Text: p.text, ModelName: "fake-model", TotalTokens: 42}, nil
}

type fakeContentStore struct {
	docs      map[primitive.ObjectID]*models.Content
	insertErr error
	listOpt   repositories.ListContentOptions
	statusSet int
	counts    map[models.ContentStatus]int64
	views     int64
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{docs: map[primitive.ObjectID]*models.Content{}, counts: map[models.ContentStatus]int64{}}
}

func (f *fakeContentStore) Insert(ctx context.Context, c *models.Content) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.docs[c.ID] = c
	return c.ID, nil
}

func (f *fakeContentStore) IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Content, error) {
	c, ok := f.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c.ViewCount++
	return c, nil
}

func (f *fakeContentStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ContentStatus) (*models.Content, error) {
	f.statusSet++
	c, ok := f.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c.Status = status
	return c, nil
}

func (f *fakeContentStore) List(ctx context.Context, opt repositories.ListContentOptions) ([]models.Content, int64, error) {
	f.listOpt = opt
	out := []models.Content{}
	for _, c := range f.docs {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeContentStore) CountByUser(ctx context.Context, userID primitive.ObjectID, status models.ContentStatus) (int64, error) {
	return f.counts[status], nil
}

func (f *fakeContentStore) SumViews(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return f.views, nil
}

type fakeAnalyticsStore struct {
	rows []models.Analytics
	err  error
}

func (f *fakeAnalyticsStore) Insert(ctx context.Context, a models.Analytics) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, a)
	return nil
}

type fakeAILogStore struct {
	rows []models.AILog
	err  error
}

func (f *fakeAILogStore) Insert(ctx context.Context, entry models.AILog) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, entry)
	return nil
}

type fakeBotStore struct {
	bots      map[string]*models.Bot
	insertErr error
	deleteErr error
}

func newFakeBotStore(bots ...models.Bot) *fakeBotStore {
	f := &fakeBotStore{bots: map[string]*models.Bot{}}
	for i := range bots {
		b := bots[i]
		f.bots[b.BotID] = &b
	}
	return f
}

func (f *fakeBotStore) Insert(ctx context.Context, b *models.Bot) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	b.ID = primitive.NewObjectID()
	f.bots[b.BotID] = b
	return b.ID, nil
}

func (f *fakeBotStore) FindByBotID(ctx context.Context, botID string) (*models.Bot, error) {
	b, ok := f.bots[botID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return b, nil
}

func (f *fakeBotStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Bot, error) {
	out := []models.Bot{}
	for _, b := range f.bots {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBotStore) UpdateState(ctx context.Context, botID string, status models.BotStatus, transcriptID string) (*models.Bot, error) {
	b, ok := f.bots[botID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	b.Status = status
	if transcriptID != "" {
		b.TranscriptID = transcriptID
	}
	return b, nil
}

func (f *fakeBotStore) DeleteByBotID(ctx context.Context, botID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.bots[botID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.bots, botID)
	return nil
}

func (f *fakeBotStore) CountByStatus(ctx context.Context, userID primitive.ObjectID) ([]models.BotStatusCount, error) {
	counts := map[models.BotStatus]int64{}
	for _, b := range f.bots {
		counts[b.Status]++
	}
	out := []models.BotStatusCount{}
	for s, n := range counts {
		out = append(out, models.BotStatusCount{Status: s, Count: n})
	}
	return out, nil
}

type fakeBotProvider struct {
	created    meetstreamclient.Bot
	createErr  error
	createIn   *meetstreamclient.CreateBotInput
	detail     meetstreamclient.Bot
	detailErr  error
	removeErr  error
	removed    []string
	transcript json.RawMessage
	fetchErr   error
}

func (f *fakeBotProvider) CreateBot(ctx context.Context, in meetstreamclient.CreateBotInput) (meetstreamclient.Bot, error) {
	f.createIn = &in
	if f.createErr != nil {
		return meetstreamclient.Bot{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeBotProvider) GetBot(ctx context.Context, botID string) (meetstreamclient.Bot, error) {
	return f.detail, f.detailErr
}

func (f *fakeBotProvider) RemoveBot(ctx context.Context, botID string) error {
	f.removed = append(f.removed, botID)
	return f.removeErr
}

func (f *fakeBotProvider) GetTranscript(ctx context.Context, botID string) (json.RawMessage, error) {
	return f.transcript, f.fetchErr
}

type fakeMeetingStore struct {
	meetings  []*models.Meeting
	insertErr error
	limit     int64
}

func (f *fakeMeetingStore) Insert(ctx context.Context, m *models.Meeting) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	m.ID = primitive.NewObjectID()
	f.meetings = append(f.meetings, m)
	return m.ID, nil
}

func (f *fakeMeetingStore) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Meeting, error) {
	f.limit = limit
	out := []models.Meeting{}
	for _, m := range f.meetings {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMeetingStore) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return int64(len(f.meetings)), nil
}

type fakeBus struct {
	mu     sync.Mutex
	events []eventbus.Event
	topics []string
	err    error
}

func (b *fakeBus) Publish(ctx context.Context, topic string, event eventbus.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.topics = append(b.topics, topic)
	b.events = append(b.events, event)
	return nil
}

func (b *fakeBus) Close() {}

func (b *fakeBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []string{}
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}
