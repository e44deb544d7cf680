package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"co-brain-be/internal/config"
	"co-brain-be/internal/constant"
	"co-brain-be/internal/controller"
	"co-brain-be/internal/pkg/logger"
	"co-brain-be/internal/pkg/serverutils"
	"co-brain-be/internal/repository/memory"
	"co-brain-be/internal/service"
	"co-brain-be/internal/websocket"
	"co-brain-be/pkg/chatbot"
	"co-brain-be/pkg/llm/factory"
	pktNats "co-brain-be/pkg/nats"
	"co-brain-be/pkg/store"
	"co-brain-be/pkg/tokenizer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Container struct {
	// Controllers
	CheckController    controller.ICheckController
	SessionController  controller.ISessionController
	SettingsController controller.ISettingsController
	DocumentController controller.IDocumentController
	ChatbotController  controller.IChatbotController

	SessionAuth fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger *logger.ZapLogger

	closers []func()
}

type Option func(*options)

type options struct {
	registry *chatbot.Registry
	logger   *logger.ZapLogger
	counter  tokenizer.Counter
}

// WithRegistry replaces the provider dispatchers, e.g. with fakes in tests.
func WithRegistry(r *chatbot.Registry) Option {
	return func(o *options) { o.registry = r }
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(o *options) { o.logger = l }
}

func WithCounter(c tokenizer.Counter) Option {
	return func(o *options) { o.counter = c }
}

func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Core Facades
	sysLogger := o.logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	}

	defaultProvider, err := store.ParseProvider(cfg.Ai.DefaultProvider)
	if err != nil {
		return nil, fmt.Errorf("LLM_PROVIDER: %w", err)
	}

	// 2. Event Bus
	// Blocking until ack keeps websocket frames in conversation order.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		watermill.NewStdLogger(false, false),
	)

	// 3. Infrastructure
	var audit service.AuditPublisher
	var closers []func()
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			audit = natsPub
			closers = append(closers, natsPub.Close)
		}
	}

	wsLogger := sysLogger
	if o.logger == nil {
		wsLogger = logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "websocket.log"))
	}
	wsHub := websocket.NewHub(wsLogger)

	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL)
	sessionRepo.OnEvicted(wsHub.CloseSession)
	tokens := serverutils.NewSessionTokens(cfg.Session.Secret)

	registry := o.registry
	if registry == nil {
		registry, err = NewRegistry(cfg, sysLogger.Zap())
		if err != nil {
			return nil, err
		}
	}

	counter := o.counter
	if counter == nil {
		counter = tokenizer.NewTiktokenCounter(cfg.Ai.TokenizerModel)
	}

	// 4. Services
	publisher := service.NewEventPublisher(pubSub, constant.SessionEventsTopic)
	consumerService := service.NewConsumerService(pubSub, constant.SessionEventsTopic, wsHub, audit, sysLogger)

	sessionService := service.NewSessionService(sessionRepo, tokens, defaultProvider, map[store.Provider]string{
		store.ProviderGemini:    cfg.Keys.Gemini,
		store.ProviderOpenAI:    cfg.Keys.OpenAI,
		store.ProviderAnthropic: cfg.Keys.Anthropic,
	}, publisher, sysLogger)
	settingsService := service.NewSettingsService(Models(cfg), publisher, sysLogger)
	documentService := service.NewDocumentService(counter, publisher, sysLogger)
	chatbotService := service.NewChatbotService(registry, counter, publisher, sysLogger)

	// 5. Controllers
	return &Container{
		CheckController:    controller.NewCheckController(sessionRepo),
		SessionController:  controller.NewSessionController(sessionService),
		SettingsController: controller.NewSettingsController(settingsService),
		DocumentController: controller.NewDocumentController(documentService),
		ChatbotController:  controller.NewChatbotController(chatbotService, wsHub),

		SessionAuth: serverutils.SessionMiddleware(tokens, sessionRepo),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,

		closers: append(closers, func() { pubSub.Close() }),
	}, nil
}

// Start runs the hub and the bus consumer until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
	c.Logger.Sync()
}

// Models lists the configured model per provider.
func Models(cfg *config.Config) map[store.Provider]string {
	return map[store.Provider]string{
		store.ProviderGemini:    cfg.Ai.GeminiModel,
		store.ProviderOpenAI:    cfg.Ai.OpenAIModel,
		store.ProviderAnthropic: cfg.Ai.AnthropicModel,
	}
}

// NewRegistry builds the three real provider dispatchers from config.
func NewRegistry(cfg *config.Config, zl *zap.Logger) (*chatbot.Registry, error) {
	client := &http.Client{Timeout: cfg.Ai.HTTPTimeout}
	models := Models(cfg)

	backends := map[store.Provider]factory.BackendConfig{
		store.ProviderGemini:    {BaseURL: cfg.Ai.GeminiBaseURL, Model: models[store.ProviderGemini], Client: client},
		store.ProviderOpenAI:    {BaseURL: cfg.Ai.OpenAIBaseURL, Model: models[store.ProviderOpenAI], Client: client},
		store.ProviderAnthropic: {BaseURL: cfg.Ai.AnthropicURL, Model: models[store.ProviderAnthropic], Client: client},
	}
	settings := map[store.Provider]chatbot.Settings{
		store.ProviderGemini:    {Temperature: cfg.Ai.Temperature},
		store.ProviderOpenAI:    {Temperature: cfg.Ai.Temperature},
		store.ProviderAnthropic: {Temperature: cfg.Ai.Temperature, MaxTokens: cfg.Ai.AnthropicMaxTokens},
	}

	registry, err := chatbot.NewDefaultRegistry(backends, settings, zl)
	if err != nil {
		return nil, fmt.Errorf("build provider registry: %w", err)
	}
	return registry, nil
}
