package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("generator: provider returned no text")

// Completion is the raw text answer of a provider plus its usage metadata.
type Completion struct {
	Text         string
	ModelName    string
	ModelVersion string
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	Duration     time.Duration
}

// Provider is a generative text completion service.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxOutputTokens int) (*Completion, error)
}

// ProviderConfig configures NewProvider.
type ProviderConfig struct {
	Provider     string // "gemini" | "openai"
	GeminiModel  string
	GeminiAPIKey string
	OpenAIModel  string
	OpenAIAPIKey string
	Temperature  float32
	HTTPClient   *http.Client
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		p, err := NewGeminiProvider(ctx, GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			HTTPClient:  cfg.HTTPClient,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case "openai":
		p, err := NewOpenAIProvider(OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			HTTPClient:  cfg.HTTPClient,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("generator: unknown provider %q", cfg.Provider)
	}
}
