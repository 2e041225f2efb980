package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"content-rebirth/cmd/api/clients/meetstreamclient"
	"content-rebirth/cmd/api/handlers"
	"content-rebirth/cmd/api/httpclient"
	"content-rebirth/cmd/api/router"
	"content-rebirth/cmd/api/services"
	"content-rebirth/config"
	"content-rebirth/db"
	"content-rebirth/eventbus"
	"content-rebirth/generator"
	"content-rebirth/models"
	"content-rebirth/repositories"
)

// @title           Content Rebirth API
// @version         1.0
// @description     Meeting transcription bots and AI content generation from transcripts
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal(err)
	}
	database := db.Database()

	userID, err := primitive.ObjectIDFromHex(cfg.DefaultUser.ID)
	if err != nil {
		log.Fatalf("invalid default_user.id %q: %v", cfg.DefaultUser.ID, err)
	}
	users := repositories.NewUserRepository(database)
	if err := users.EnsureUser(ctx, models.User{ID: userID, Email: cfg.DefaultUser.Email, Name: cfg.DefaultUser.Name}); err != nil {
		log.Fatalf("ensure default user: %v", err)
	}

	bus := newEventBus(cfg.Kafka)
	defer bus.Close()
	dispatcher := services.NewEventDispatcher(bus)

	provider, err := generator.NewProvider(ctx, generator.ProviderConfig{
		Provider:     cfg.AI.Provider,
		GeminiModel:  cfg.AI.GeminiModel,
		GeminiAPIKey: cfg.AI.GeminiAPIKey,
		OpenAIModel:  cfg.AI.OpenAIModel,
		OpenAIAPIKey: cfg.AI.OpenAIAPIKey,
		Temperature:  cfg.AI.Temperature,
		HTTPClient:   httpclient.New(httpclient.Config{Timeout: cfg.AI.Timeout}),
	})
	if err != nil {
		config.Logger.Warnf("AI provider %q disabled: %v", cfg.AI.Provider, err)
	}

	meetstream := meetstreamclient.New(meetstreamclient.Config{
		BaseURL:        cfg.Meetstream.BaseURL,
		APIKey:         cfg.Meetstream.APIKey,
		DeepgramAPIKey: cfg.Meetstream.DeepgramAPIKey,
		BotMessage:     cfg.Meetstream.BotMessage,
		WebhookURL:     cfg.Meetstream.WebhookURL,
		HTTPClient:     httpclient.New(httpclient.Config{Timeout: cfg.Meetstream.Timeout}),
	})
	if !meetstream.Configured() {
		config.Logger.Warn("MEETSTREAM_API_KEY is not set; bot calls will fail")
	}

	contents := repositories.NewContentRepository(database)
	meetings := repositories.NewMeetingRepository(database)
	analytics := repositories.NewAnalyticsRepository(database)

	engine := router.New(router.Services{
		Content:   services.NewContentService(contents, analytics, repositories.NewAILogRepository(database), provider, dispatcher, userID),
		Bots:      services.NewBotService(repositories.NewBotRepository(database), meetstream, dispatcher, userID),
		Meetings:  services.NewMeetingService(meetings, analytics, dispatcher, userID),
		Dashboard: services.NewDashboardService(meetings, contents, userID),
		Health: handlers.HealthDeps{
			PingDB:               db.Ping,
			AIProvider:           cfg.AI.Provider,
			AIConfigured:         provider != nil,
			MeetstreamConfigured: meetstream.Configured(),
		},
	})

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: cors.New(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id", "X-Span-Id"},
		}).Handler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infof("content-rebirth api listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Errorf("http shutdown: %v", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		config.Logger.Errorf("mongo disconnect: %v", err)
	}
}

// newEventBus returns a Kafka bus when brokers are configured and a no-op
// bus otherwise.
func newEventBus(cfg config.KafkaConfig) eventbus.EventBus {
	eventbus.SetDomainTopic(cfg.Topic)
	if cfg.Brokers == "" {
		config.Logger.Info("KAFKA_BOOTSTRAP_SERVERS not set; domain events are dropped")
		return eventbus.NoopEventBus{}
	}
	if err := eventbus.EnsureTopics(cfg.Brokers, eventbus.TopicDomainEvents, cfg.Partitions); err != nil {
		config.Logger.Warnf("ensure kafka topic %s: %v", eventbus.TopicDomainEvents.Base(), err)
	}
	bus, err := eventbus.NewKafkaEventBus(cfg.Brokers)
	if err != nil {
		config.Logger.Errorf("kafka event bus disabled: %v", err)
		return eventbus.NoopEventBus{}
	}
	return bus
}
