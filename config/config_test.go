package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MEETSTREAM_BASE_URL", "")

	cfg, err := Parse([]byte("logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "content_rebirth", cfg.Mongo.DBName)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "https://api.meetstream.ai", cfg.Meetstream.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Meetstream.Timeout)
	assert.Equal(t, "507f1f77bcf86cd799439011", cfg.DefaultUser.ID)
}

func TestParseReadsSecretsFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("MEETSTREAM_API_KEY", "ms-key")
	t.Setenv("MEETSTREAM_BASE_URL", "http://meetstream.local")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "kafka:9092")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Parse([]byte(`
ai:
  provider: openai
  timeout: 15s
meetstream:
  timeout: 5s
`))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "gemini-key", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "ms-key", cfg.Meetstream.APIKey)
	assert.Equal(t, "http://meetstream.local", cfg.Meetstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Meetstream.Timeout)
	assert.Equal(t, "kafka:9092", cfg.Kafka.Brokers)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("logging: [unterminated"))
	assert.Error(t, err)
}
