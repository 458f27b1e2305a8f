package bootstrap

import (
	"context"
	"fmt"

	"mycloud-drive/internal/config"
	"mycloud-drive/internal/controller"
	"mycloud-drive/internal/handler"
	"mycloud-drive/internal/pkg/logger"
	"mycloud-drive/internal/pkg/serverutils"
	"mycloud-drive/internal/repository/memory"
	"mycloud-drive/internal/repository/unitofwork"
	"mycloud-drive/internal/service"
	"mycloud-drive/internal/websocket"
	"mycloud-drive/pkg/events"
	"mycloud-drive/pkg/llm/factory"
	pktNats "mycloud-drive/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController    controller.IAuthController
	FileController    controller.IFileController
	ChatbotController controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	AccessLogService service.IAccessLogService

	// WebSockets
	EventsHandler *handler.EventsHandler
	WebSocketHub  *websocket.Hub

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	blobs, err := service.NewDiskBlobStore(cfg.App.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg.Ai),
		cfg.Ai.ApiKey,
	)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// NATS is optional: without it access logs are written inline.
	var (
		eventPub service.EventPublisher
		eventSub service.EventSubscriber
	)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "NATS publisher unavailable", map[string]interface{}{"error": err.Error()})
	}
	if natsPub != nil {
		eventPub = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("Bootstrap", "NATS subscriber unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		eventSub = natsSub
		c.closers = append(c.closers, natsSub.Close)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	c.WebSocketHub = websocket.NewHub(redisClient(cfg.App.RedisURL, sysLogger), wsLogger)

	// 4. Services
	cache := memory.NewCatalogCache(cfg.App.CatalogCacheTTL)
	tokens := serverutils.NewTokenIssuer(cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)

	publisherService := service.NewPublisherService(events.TopicFilesChanged, pubSub)
	c.AccessLogService = service.NewAccessLogService(uowFactory, eventPub, eventSub, sysLogger)
	c.ConsumerService = service.NewFileEventConsumer(pubSub, events.TopicFilesChanged, cache, c.WebSocketHub, sysLogger)

	authService := service.NewAuthService(uowFactory, tokens, sysLogger)
	fileService := service.NewFileService(uowFactory, blobs, cache, publisherService, c.AccessLogService, sysLogger)
	chatbotService := service.NewChatbotService(
		uowFactory,
		blobs,
		llmProvider,
		cfg.Ai.MaxContextBytes,
		cfg.Ai.ChatTemperature,
		sysLogger,
	)

	// 5. Controllers
	auth := serverutils.AuthMiddleware(authService, tokens, false)
	wsAuth := serverutils.AuthMiddleware(authService, tokens, true)

	c.AuthController = controller.NewAuthController(authService)
	c.FileController = controller.NewFileController(fileService, c.AccessLogService, auth)
	c.ChatbotController = controller.NewChatbotController(chatbotService, auth)
	c.EventsHandler = handler.NewEventsHandler(c.WebSocketHub, wsAuth, wsLogger)

	return c, nil
}

// Close releases bus connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func llmBaseURL(cfg config.AIConfig) string {
	if cfg.LLMProvider == "ollama" {
		return cfg.OllamaBaseURL
	}
	return cfg.OpenAIBaseURL
}

// redisClient returns nil when no URL is configured, leaving the hub single-instance.
func redisClient(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
	}
	return rdb
}
