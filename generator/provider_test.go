package generator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProviderComplete(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "  generated text  "}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 11, "candidatesTokenCount": 7, "totalTokenCount": 18},
			"modelVersion": "gemini-1.5-flash-002"
		}`)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:      "test-key",
		Model:       "gemini-1.5-flash",
		Temperature: 0.7,
		HTTPClient:  srv.Client(),
		BaseURL:     srv.URL,
	})
	require.NoError(t, err)

	c, err := p.Complete(context.Background(), "write something", 1000)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-1.5-flash:generateContent"), gotPath)
	assert.Equal(t, "generated text", c.Text)
	assert.Equal(t, "gemini-1.5-flash", c.ModelName)
	assert.Equal(t, "gemini-1.5-flash-002", c.ModelVersion)
	assert.EqualValues(t, 11, c.InputTokens)
	assert.EqualValues(t, 7, c.OutputTokens)
	assert.EqualValues(t, 18, c.TotalTokens)

	gc, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1000, gc["maxOutputTokens"])
}

func TestGeminiProviderEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates": [{"content": {"role": "model", "parts": [{"text": "   "}]}}]}`)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", HTTPClient: srv.Client(), BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "x", 10)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}

func TestOpenAIProviderComplete(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1", "object": "chat.completion", "model": "gpt-4-0613",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "hello world"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 2, "total_tokens": 7}
		}`)
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:     "sk-test",
		Model:      "gpt-4",
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL + "/v1",
	})
	require.NoError(t, err)

	c, err := p.Complete(context.Background(), "prompt text", 500)
	require.NoError(t, err)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.EqualValues(t, 500, gotBody["max_tokens"])
	assert.Equal(t, "hello world", c.Text)
	assert.Equal(t, "gpt-4-0613", c.ModelVersion)
	assert.EqualValues(t, 7, c.TotalTokens)
}

func TestOpenAIProviderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error": {"message": "rate limited", "type": "requests"}}`)
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk", HTTPClient: srv.Client(), BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "x", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestNewProviderSelectsImplementation(t *testing.T) {
	p, err := NewProvider(context.Background(), ProviderConfig{Provider: "openai", OpenAIAPIKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	p, err = NewProvider(context.Background(), ProviderConfig{Provider: "Gemini", GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	_, err = NewProvider(context.Background(), ProviderConfig{Provider: "claude"})
	assert.Error(t, err)
}

func TestNewProviderMissingKeyReturnsNilInterface(t *testing.T) {
	p, err := NewProvider(context.Background(), ProviderConfig{Provider: "gemini"})
	require.Error(t, err)
	assert.Nil(t, p)
}
