package bootstrap

import (
	"equeue-slip-bot/internal/config"
	"equeue-slip-bot/internal/controller"
	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/internal/repository/memory"
	"equeue-slip-bot/internal/service"
	"equeue-slip-bot/internal/transport/telegram"
	"equeue-slip-bot/pkg/artifact"
	"equeue-slip-bot/pkg/conversation"
	"equeue-slip-bot/pkg/document"
	"equeue-slip-bot/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	SlipController controller.ISlipController

	// Core
	Renderer            *document.Renderer
	ConversationService service.IConversationService

	// Background Services (Exposed for main.go to run)
	CleanupService service.ICleanupService
	PubSub         *gochannel.GoChannel

	cfg *config.Config
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Storage
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)
	artifacts := artifact.NewFileStore(cfg.Paths.TempDir)

	// 4. Rendering
	registry := document.NewRegistry(cfg.Paths.FontsDir, cfg.Paths.AssetsDir, sysLogger)
	renderer := document.NewRenderer(registry, artifacts, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, events.TopicArtifacts)
	cleanupService := service.NewCleanupService(pubSub, events.TopicArtifacts, artifacts, sysLogger)

	machine := conversation.NewMachine(renderer, sysLogger,
		conversation.WithUnrecognizedNotice(cfg.Telegram.EchoUnrecognized),
	)
	conversationService := service.NewConversationService(sessionRepo, machine, publisherService, sysLogger)

	// 6. Controllers
	slipController := controller.NewSlipController(renderer, conversationService)

	return &Container{
		Logger:              sysLogger,
		SlipController:      slipController,
		Renderer:            renderer,
		ConversationService: conversationService,
		CleanupService:      cleanupService,
		PubSub:              pubSub,
		cfg:                 cfg,
	}
}

// NewBot wires the Telegram transport on top of the conversation service.
func (c *Container) NewBot(api telegram.Sender) *telegram.Bot {
	dispatcher := telegram.NewDispatcher(c.cfg.Telegram.WorkerIdleTimeout, c.cfg.Telegram.WorkerQueueLength)
	return telegram.NewBot(api, c.ConversationService, dispatcher, c.Logger)
}
