package generator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	HTTPClient  *http.Client
	// BaseURL overrides the Gemini API endpoint.
	BaseURL string
}

// GeminiProvider calls the Gemini API through google.golang.org/genai.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("generator: gemini api key is not configured")
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiProvider{client: client, model: model, temperature: cfg.Temperature}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Complete(ctx context.Context, prompt string, maxOutputTokens int) (*Completion, error) {
	gc := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxOutputTokens),
	}
	if p.temperature > 0 {
		gc.Temperature = genai.Ptr(p.temperature)
	}

	start := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), gc)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, ErrEmptyResponse
	}

	c := &Completion{
		Text:         text,
		ModelName:    p.model,
		ModelVersion: result.ModelVersion,
		Duration:     time.Since(start),
	}
	if u := result.UsageMetadata; u != nil {
		c.InputTokens = int64(u.PromptTokenCount)
		c.OutputTokens = int64(u.CandidatesTokenCount)
		c.TotalTokens = int64(u.TotalTokenCount)
	}
	return c, nil
}
