package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"content-rebirth/eventbus"
	"content-rebirth/events"
	"content-rebirth/generator"
	"content-rebirth/models"
)

const generatedJSON = `Here you go:
{"title": "Roadmap Review", "content": "We reviewed the roadmap.", "summary": "A review.", "keyTakeaways": ["Ship Q3"], "tags": ["planning", "Planning", "roadmap"], "category": "Strategy"}`

type contentFixture struct {
	svc       *ContentService
	store     *fakeContentStore
	analytics *fakeAnalyticsStore
	aiLogs    *fakeAILogStore
	provider  *fakeProvider
	bus       *fakeBus
}

func newContentFixture(text string, err error) contentFixture {
	f := contentFixture{
		store:     newFakeContentStore(),
		analytics: &fakeAnalyticsStore{},
		aiLogs:    &fakeAILogStore{},
		provider:  &fakeProvider{text: text, err: err},
		bus:       &fakeBus{},
	}
	f.svc = NewContentService(f.store, f.analytics, f.aiLogs, f.provider, NewEventDispatcher(f.bus), testUserID)
	return f
}

func TestGenerateRejectsBlankTranscript(t *testing.T) {
	for _, transcript := range []string{"", "   ", "\n\t  \n"} {
		f := newContentFixture(generatedJSON, nil)

		_, err := f.svc.Generate(context.Background(), generator.GenerationRequest{Transcript: transcript}, "")

		assert.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, f.provider.calls)
		assert.Empty(t, f.store.docs)
	}
}

func TestGenerateRejectsUnknownEnums(t *testing.T) {
	testCases := []generator.GenerationRequest{
		{Transcript: "x", ContentType: "PODCAST"},
		{Transcript: "x", Tone: "angry"},
		{Transcript: "x", Length: "epic"},
	}
	for _, req := range testCases {
		f := newContentFixture(generatedJSON, nil)
		_, err := f.svc.Generate(context.Background(), req, "")
		assert.ErrorIs(t, err, ErrValidation)
		assert.Zero(t, f.provider.calls)
	}
}

func TestGenerateAcceptsLowerCaseType(t *testing.T) {
	f := newContentFixture(generatedJSON, nil)

	c, err := f.svc.Generate(context.Background(), generator.GenerationRequest{Transcript: "x", ContentType: "article", Tone: "Casual"}, "")
	require.NoError(t, err)

	assert.Equal(t, models.ContentTypeArticle, c.Type)
	assert.Contains(t, f.provider.prompt, "into article content")
}

func TestGenerateRejectsMalformedMeetingID(t *testing.T) {
	f := newContentFixture(generatedJSON, nil)
	_, err := f.svc.Generate(context.Background(), generator.GenerationRequest{Transcript: "hello"}, "not-an-id")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, f.provider.calls)
}

func TestGenerateStoresDraft(t *testing.T) {
	f := newContentFixture(generatedJSON, nil)
	meetingID := primitive.NewObjectID()

	c, err := f.svc.Generate(context.Background(), generator.GenerationRequest{
		Transcript:  "Alice: we need to review the roadmap.",
		ContentType: models.ContentTypeBlogPost,
		Length:      generator.LengthLong,
	}, meetingID.Hex())
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.calls)
	assert.Equal(t, 4000, f.provider.maxTokens)
	assert.Contains(t, f.provider.prompt, "Alice: we need to review the roadmap.")

	require.Len(t, f.store.docs, 1)
	assert.Equal(t, "Roadmap Review", c.Title)
	assert.Equal(t, models.ContentStatusDraft, c.Status)
	assert.Equal(t, models.ContentTypeBlogPost, c.Type)
	assert.Equal(t, testUserID, c.UserID)
	assert.Zero(t, c.ViewCount)
	require.NotNil(t, c.MeetingID)
	assert.Equal(t, meetingID, *c.MeetingID)
	assert.Equal(t, []string{"planning", "roadmap"}, c.Tags)

	require.Len(t, f.aiLogs.rows, 1)
	assert.Equal(t, "generate", f.aiLogs.rows[0].Purpose)
	assert.Nil(t, f.aiLogs.rows[0].ErrorMessage)
	require.Len(t, f.analytics.rows, 1)
	assert.Equal(t, models.AnalyticsGenerationSuccess, f.analytics.rows[0].Type)

	assert.Equal(t, []string{string(events.ContentGenerated)}, f.bus.types())
	assert.Equal(t, eventbus.TopicDomainEvents.Base(), f.bus.topics[0])
	payload, err := eventbus.DecodeJSON[events.ContentGeneratedEvent](f.bus.events[0])
	require.NoError(t, err)
	assert.Equal(t, c.ID, payload.ContentID)
}

func TestGenerateDefaultsToMediumBudget(t *testing.T) {
	f := newContentFixture(generatedJSON, nil)
	_, err := f.svc.Generate(context.Background(), generator.GenerationRequest{Transcript: "hello"}, "")
	require.NoError(t, err)
	assert.Equal(t, 2000, f.provider.maxTokens)
}

func TestGenerateProviderFailure(t *testing.T) {
	f := newContentFixture("", errors.New("quota exceeded"))

	_, err := f.svc.Generate(context.Background(), generator.GenerationRequest{Transcript: "hello"}, "")

	require.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, f.store.docs)
	require.Len(t, f.aiLogs.rows, 1)
	require.NotNil(t, f.aiLogs.rows[0].ErrorMessage)
	assert.Empty(t, f.bus.types())
}

func TestGenerateEmptyProviderText(t *testing.T) {
	f := newContentFixture("   \n ", nil)

	_, err := f.svc.Generate(context.Background(), generator.GenerationRequest{Transcript: "hello"}, "")

	require.ErrorIs(t, err, ErrProvider)
	assert.ErrorIs(t, err, generator.ErrEmptyResponse)
	assert.Empty(t, f.store.docs)
}

func TestGenerateWithoutProvider(t *testing.T) {
	svc := NewContentService(newFakeContentStore(), nil, nil, nil, nil, testUserID)
	_, err := svc.Generate(context.Background(), generator.GenerationRequest{Transcript: "hello"}, "")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestGeneratePersistenceFailure(t *testing.T) {
	f := newContentFixture(generatedJSON, nil)
	f.store.insertErr = errors.New("connection reset")

	_, err := f.svc.Generate(context.Background(), generator.GenerationRequest{Transcript: "hello"}, "")

	require.ErrorIs(t, err, ErrPersistence)
	assert.NotContains(t, err.Error(), "connection reset")
	assert.Empty(t, f.analytics.rows)
	assert.Empty(t, f.bus.types())
}

func TestGenerateIgnoresSideRecordFailures(t *testing.T) {
	f := newContentFixture(generatedJSON, nil)
	f.analytics.err = errors.New("analytics down")
	f.aiLogs.err = errors.New("ai logs down")
	f.bus.err = errors.New("broker down")

	c, err := f.svc.Generate(context.Background(), generator.GenerationRequest{Transcript: "hello"}, "")

	require.NoError(t, err)
	assert.Len(t, f.store.docs, 1)
	assert.Equal(t, "Roadmap Review", c.Title)
}

func TestGetIncrementsViews(t *testing.T) {
	f := newContentFixture("", nil)
	id, _ := f.store.Insert(context.Background(), &models.Content{Title: "t"})

	c, err := f.svc.Get(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.ViewCount)

	c, err = f.svc.Get(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 2, c.ViewCount)

	require.Len(t, f.analytics.rows, 2)
	assert.Equal(t, models.AnalyticsContentView, f.analytics.rows[1].Type)
}

func TestGetNotFound(t *testing.T) {
	f := newContentFixture("", nil)

	_, err := f.svc.Get(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNormalizesFilters(t *testing.T) {
	f := newContentFixture("", nil)

	page, err := f.svc.List(context.Background(), ListContentInput{Page: 0, PageSize: 500, Type: "article", Status: "draft", Category: " Tech "})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, models.ContentTypeArticle, f.store.listOpt.Type)
	assert.Equal(t, models.ContentStatusDraft, f.store.listOpt.Status)
	assert.Equal(t, "Tech", f.store.listOpt.Category)
	require.NotNil(t, f.store.listOpt.UserID)
	assert.Equal(t, testUserID, *f.store.listOpt.UserID)

	_, err = f.svc.List(context.Background(), ListContentInput{Type: "podcast"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.List(context.Background(), ListContentInput{Status: "gone"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPublish(t *testing.T) {
	f := newContentFixture("", nil)
	id, _ := f.store.Insert(context.Background(), &models.Content{Title: "Launch", Body: "Body", Summary: "Sum"})

	res, err := f.svc.Publish(context.Background(), id.Hex(), "Medium")
	require.NoError(t, err)

	assert.Equal(t, "https://medium.com/new-story", res.URL)
	assert.Equal(t, "medium", res.Platform)
	assert.Equal(t, "Launch", res.Content.Title)
	assert.Equal(t, []string{}, res.Content.Tags)
	assert.Equal(t, models.ContentStatusPublished, f.store.docs[id].Status)
	assert.Equal(t, []string{string(events.ContentPublished)}, f.bus.types())
}

func TestPublishRejectsUnknownPlatform(t *testing.T) {
	f := newContentFixture("", nil)
	id, _ := f.store.Insert(context.Background(), &models.Content{Title: "Launch"})

	_, err := f.svc.Publish(context.Background(), id.Hex(), "myspace")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, f.store.statusSet)
	assert.Equal(t, models.ContentStatus(""), f.store.docs[id].Status)
}

func TestPublishMissingContent(t *testing.T) {
	f := newContentFixture("", nil)
	_, err := f.svc.Publish(context.Background(), primitive.NewObjectID().Hex(), "devto")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOutlineAndInsights(t *testing.T) {
	f := newContentFixture(`["Introduction", "Budget", "Conclusion"]`, nil)

	outline, err := f.svc.Outline(context.Background(), "we talked about budget", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Introduction", "Budget", "Conclusion"}, outline)
	assert.Equal(t, generator.ListTokenBudget, f.provider.maxTokens)

	f.provider.text = "- Budget is tight\n- Hire two engineers"
	insights, err := f.svc.Insights(context.Background(), "we talked about budget")
	require.NoError(t, err)
	assert.Equal(t, []string{"Budget is tight", "Hire two engineers"}, insights)

	require.Len(t, f.aiLogs.rows, 2)
	assert.Equal(t, "outline", f.aiLogs.rows[0].Purpose)
	assert.Equal(t, "insights", f.aiLogs.rows[1].Purpose)

	_, err = f.svc.Insights(context.Background(), " ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.Outline(context.Background(), "x", "PODCAST")
	assert.ErrorIs(t, err, ErrValidation)
}
