package generator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	HTTPClient  *http.Client
	// BaseURL overrides the OpenAI API endpoint, e.g. "http://host/v1".
	BaseURL string
}

// OpenAIProvider calls the chat completion API through go-openai.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("generator: openai api key is not configured")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(oc),
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Complete(ctx context.Context, prompt string, maxOutputTokens int) (*Completion, error) {
	start := time.Now()
	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   maxOutputTokens,
			Temperature: p.temperature,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &Completion{
		Text:         text,
		ModelName:    p.model,
		ModelVersion: resp.Model,
		InputTokens:  int64(resp.Usage.PromptTokens),
		OutputTokens: int64(resp.Usage.CompletionTokens),
		TotalTokens:  int64(resp.Usage.TotalTokens),
		Duration:     time.Since(start),
	}, nil
}
