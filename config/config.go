package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Server      ServerConfig      `yaml:"server"`
	Mongo       MongoConfig       `yaml:"mongo"`
	AI          AIConfig          `yaml:"ai"`
	Meetstream  MeetstreamConfig  `yaml:"meetstream"`
	Kafka       KafkaConfig       `yaml:"kafka"`
	CORS        CORSConfig        `yaml:"cors"`
	DefaultUser DefaultUserConfig `yaml:"default_user"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// MongoConfig holds the database name. The connection URI is a secret and
// is read from MONGO_URI instead.
type MongoConfig struct {
	DBName string `yaml:"db_name"`
	URI    string `yaml:"-"`
}

// AIConfig selects the generation provider. Only one provider is active per
// process; the API key for it comes from the environment.
type AIConfig struct {
	Provider    string        `yaml:"provider"` // "gemini" | "openai"
	GeminiModel string        `yaml:"gemini_model"`
	OpenAIModel string        `yaml:"openai_model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`

	GeminiAPIKey string `yaml:"-"`
	OpenAIAPIKey string `yaml:"-"`
}

type MeetstreamConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	BotMessage string        `yaml:"bot_message"`
	WebhookURL string        `yaml:"webhook_url"`

	APIKey         string `yaml:"-"`
	DeepgramAPIKey string `yaml:"-"`
}

// KafkaConfig enables domain event publishing when Brokers is non-empty.
type KafkaConfig struct {
	Topic      string `yaml:"topic"`
	Partitions int    `yaml:"partitions"`
	Brokers    string `yaml:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultUserConfig describes the single owner of every record. There is no
// login flow; all requests act on behalf of this user.
type DefaultUserConfig struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	config = c
}

// Parse decodes a config.yaml document, fills defaults and overlays secrets
// from the environment.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	c.applyEnv()
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Mongo.DBName == "" {
		c.Mongo.DBName = "content_rebirth"
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	if c.AI.GeminiModel == "" {
		c.AI.GeminiModel = "gemini-1.5-flash"
	}
	if c.AI.OpenAIModel == "" {
		c.AI.OpenAIModel = "gpt-4"
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = 0.7
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 60 * time.Second
	}
	if c.Meetstream.BaseURL == "" {
		c.Meetstream.BaseURL = "https://api.meetstream.ai"
	}
	if c.Meetstream.Timeout == 0 {
		c.Meetstream.Timeout = 30 * time.Second
	}
	if c.Meetstream.BotMessage == "" {
		c.Meetstream.BotMessage = "Content Rebirth Bot"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "content-rebirth.events"
	}
	if c.Kafka.Partitions <= 0 {
		c.Kafka.Partitions = 3
	}
	if c.DefaultUser.ID == "" {
		c.DefaultUser.ID = "507f1f77bcf86cd799439011"
	}
	if c.DefaultUser.Email == "" {
		c.DefaultUser.Email = "default@contentrebirth.com"
	}
	if c.DefaultUser.Name == "" {
		c.DefaultUser.Name = "Default User"
	}
}

func (c *AppConfig) applyEnv() {
	c.Mongo.URI = os.Getenv("MONGO_URI")
	c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.AI.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	c.Meetstream.APIKey = os.Getenv("MEETSTREAM_API_KEY")
	c.Meetstream.DeepgramAPIKey = os.Getenv("DEEPGRAM_API_KEY")
	if v := os.Getenv("MEETSTREAM_BASE_URL"); v != "" {
		c.Meetstream.BaseURL = v
	}
	c.Kafka.Brokers = os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
