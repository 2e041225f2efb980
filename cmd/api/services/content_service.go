package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content-rebirth/cmd/api/dto"
	"content-rebirth/cmd/api/trace"
	"content-rebirth/config"
	"content-rebirth/generator"
	"content-rebirth/models"
	"content-rebirth/repositories"
)

// publishTargets maps a platform name to the page the dashboard opens.
var publishTargets = map[string]string{
	"medium":   "https://medium.com/new-story",
	"devto":    "https://dev.to/new",
	"hashnode": "https://hashnode.com/new",
	"linkedin": "https://www.linkedin.com/sharing/share-offsite/",
}

// ContentService turns transcripts into stored content and serves it back.
//
//   - provider: nil when no AI key is configured; generation then fails with a
//     provider error.
type ContentService struct {
	contents  ContentStore
	analytics AnalyticsStore
	aiLogs    AILogStore
	provider  generator.Provider
	events    *EventDispatcher
	userID    primitive.ObjectID
}

func NewContentService(contents ContentStore, analytics AnalyticsStore, aiLogs AILogStore, provider generator.Provider, events *EventDispatcher, userID primitive.ObjectID) *ContentService {
	if events == nil {
		events = NewEventDispatcher(nil)
	}
	return &ContentService{
		contents:  contents,
		analytics: analytics,
		aiLogs:    aiLogs,
		provider:  provider,
		events:    events,
		userID:    userID,
	}
}

// Generate validates req, asks the provider for content, parses the answer
// and stores it as a DRAFT. A failed call stores nothing.
func (s *ContentService) Generate(ctx context.Context, req generator.GenerationRequest, meetingID string) (*models.Content, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, validationError("transcript is required")
	}
	req = req.WithDefaults()
	if err := validateGeneration(req); err != nil {
		return nil, err
	}

	var meetingRef *primitive.ObjectID
	if meetingID = strings.TrimSpace(meetingID); meetingID != "" {
		oid, err := primitive.ObjectIDFromHex(meetingID)
		if err != nil {
			return nil, validationError("invalid meetingId")
		}
		meetingRef = &oid
	}

	if s.provider == nil {
		return nil, &ServiceError{Kind: KindProvider, Message: "AI provider is not configured"}
	}

	prompt := generator.BuildPrompt(req)
	maxTokens := req.Length.MaxTokens()
	requestedAt := time.Now()

	completion, err := s.complete(ctx, prompt, maxTokens)
	if err != nil {
		recordUsage(ctx, s.aiLogs, usage{provider: s.provider.Name(), purpose: "generate", maxTokens: maxTokens, requestedAt: requestedAt, err: err})
		config.ErrorWithFields("content generation failed", trace.WithFields(ctx, config.Fields{
			"provider":     s.provider.Name(),
			"content_type": string(req.ContentType),
			"error":        err.Error(),
		}))
		return nil, providerError("AI generation failed", err)
	}

	parsed := generator.ParseGeneratedContent(completion.Text, req)
	content := &models.Content{
		Title:        parsed.Title,
		Body:         parsed.Content,
		Summary:      parsed.Summary,
		KeyTakeaways: parsed.KeyTakeaways,
		Type:         req.ContentType,
		Category:     parsed.Category,
		Tags:         parsed.Tags,
		SEOData:      parsed.SEOData,
		Status:       models.ContentStatusDraft,
		UserID:       s.userID,
		MeetingID:    meetingRef,
	}
	if _, err := s.contents.Insert(ctx, content); err != nil {
		config.ErrorWithFields("content insert failed", trace.WithFields(ctx, config.Fields{"error": err.Error()}))
		return nil, persistenceError("failed to save generated content", err)
	}

	recordUsage(ctx, s.aiLogs, usage{
		provider:    s.provider.Name(),
		purpose:     "generate",
		maxTokens:   maxTokens,
		requestedAt: requestedAt,
		completion:  completion,
		contentID:   &content.ID,
	})
	recordAnalytics(ctx, s.analytics, models.AnalyticsGenerationSuccess, s.userID, &content.ID, map[string]any{
		"contentType": string(req.ContentType),
		"tone":        string(req.Tone),
		"length":      string(req.Length),
		"provider":    s.provider.Name(),
		"model":       completion.ModelName,
		"totalTokens": completion.TotalTokens,
	})
	s.events.PublishContentGenerated(ctx, content, s.provider.Name(), completion.ModelName)

	config.InfoWithFields("content generated", trace.WithFields(ctx, config.Fields{
		"content_id":   content.ID.Hex(),
		"content_type": string(content.Type),
		"provider":     s.provider.Name(),
	}))
	return content, nil
}

func validateGeneration(req generator.GenerationRequest) error {
	if !req.ContentType.Valid() {
		return validationError(fmt.Sprintf("unsupported content type %q", req.ContentType))
	}
	if !req.Tone.Valid() {
		return validationError(fmt.Sprintf("unsupported tone %q", req.Tone))
	}
	if !req.Length.Valid() {
		return validationError(fmt.Sprintf("unsupported length %q", req.Length))
	}
	return nil
}

// complete calls the provider and treats a blank answer as a failure.
func (s *ContentService) complete(ctx context.Context, prompt string, maxTokens int) (*generator.Completion, error) {
	completion, err := s.provider.Complete(ctx, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	if completion == nil || strings.TrimSpace(completion.Text) == "" {
		return nil, generator.ErrEmptyResponse
	}
	return completion, nil
}

// Get returns a content by id and counts the read as a view.
func (s *ContentService) Get(ctx context.Context, hexID string) (*models.Content, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, notFoundError("content not found")
	}
	c, err := s.contents.IncrementViews(ctx, id)
	if err != nil {
		return nil, storeError("content not found", "failed to load content", err)
	}
	recordAnalytics(ctx, s.analytics, models.AnalyticsContentView, s.userID, &c.ID, map[string]any{
		"views": c.ViewCount,
	})
	return c, nil
}

type ListContentInput struct {
	Page     int
	PageSize int
	Type     string
	Category string
	Status   string
}

// List returns the default user's contents, newest first.
func (s *ContentService) List(ctx context.Context, in ListContentInput) (dto.Pagination[models.Content], error) {
	opt := repositories.ListContentOptions{
		Page:     in.Page,
		PageSize: in.PageSize,
		UserID:   &s.userID,
		Category: strings.TrimSpace(in.Category),
	}
	if in.Type != "" {
		opt.Type = models.ContentType(strings.ToUpper(in.Type))
		if !opt.Type.Valid() {
			return dto.Pagination[models.Content]{}, validationError(fmt.Sprintf("unsupported content type %q", in.Type))
		}
	}
	if in.Status != "" {
		opt.Status = models.ContentStatus(strings.ToUpper(in.Status))
		if !opt.Status.Valid() {
			return dto.Pagination[models.Content]{}, validationError(fmt.Sprintf("unsupported status %q", in.Status))
		}
	}
	if opt.Page <= 0 {
		opt.Page = 1
	}
	if opt.PageSize <= 0 || opt.PageSize > 100 {
		opt.PageSize = 20
	}

	items, total, err := s.contents.List(ctx, opt)
	if err != nil {
		return dto.Pagination[models.Content]{}, persistenceError("failed to list content", err)
	}
	return dto.Pagination[models.Content]{
		Items:    items,
		Page:     opt.Page,
		PageSize: opt.PageSize,
		Total:    total,
	}, nil
}

// Publish marks a content PUBLISHED and returns where the dashboard should
// send the user to post it.
func (s *ContentService) Publish(ctx context.Context, hexID, platform string) (dto.PublishResultDTO, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	url, ok := publishTargets[platform]
	if !ok {
		return dto.PublishResultDTO{}, validationError("unsupported platform")
	}
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return dto.PublishResultDTO{}, notFoundError("content not found")
	}
	c, err := s.contents.UpdateStatus(ctx, id, models.ContentStatusPublished)
	if err != nil {
		return dto.PublishResultDTO{}, storeError("content not found", "failed to publish content", err)
	}

	recordAnalytics(ctx, s.analytics, models.AnalyticsContentEngagement, s.userID, &c.ID, map[string]any{
		"action":   "publish",
		"platform": platform,
	})
	s.events.PublishContentPublished(ctx, c, platform, url)

	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.PublishResultDTO{
		URL:      url,
		Platform: platform,
		Content: dto.PublishSnippetDTO{
			Title:   c.Title,
			Content: c.Body,
			Tags:    tags,
			Summary: c.Summary,
		},
	}, nil
}

// Outline asks the provider for the section headings of a future content.
func (s *ContentService) Outline(ctx context.Context, transcript string, contentType string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, validationError("transcript is required")
	}
	req := generator.GenerationRequest{Transcript: transcript, ContentType: models.ContentType(contentType)}.WithDefaults()
	if !req.ContentType.Valid() {
		return nil, validationError(fmt.Sprintf("unsupported content type %q", req.ContentType))
	}
	return s.completeList(ctx, "outline", generator.BuildOutlinePrompt(req))
}

// Insights asks the provider for the key points of a transcript.
func (s *ContentService) Insights(ctx context.Context, transcript string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, validationError("transcript is required")
	}
	return s.completeList(ctx, "insights", generator.BuildInsightsPrompt(transcript))
}

func (s *ContentService) completeList(ctx context.Context, purpose, prompt string) ([]string, error) {
	if s.provider == nil {
		return nil, &ServiceError{Kind: KindProvider, Message: "AI provider is not configured"}
	}
	requestedAt := time.Now()
	completion, err := s.complete(ctx, prompt, generator.ListTokenBudget)
	recordUsage(ctx, s.aiLogs, usage{
		provider:    s.provider.Name(),
		purpose:     purpose,
		maxTokens:   generator.ListTokenBudget,
		requestedAt: requestedAt,
		completion:  completion,
		err:         err,
	})
	if err != nil {
		config.ErrorWithFields("AI list request failed", trace.WithFields(ctx, config.Fields{"purpose": purpose, "error": err.Error()}))
		return nil, providerError("AI request failed", err)
	}
	items := generator.ParseList(completion.Text)
	if len(items) == 0 {
		return nil, providerError("AI request failed", errors.New("no items in provider answer"))
	}
	return items, nil
}
