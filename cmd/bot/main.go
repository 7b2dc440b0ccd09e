package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equeue-slip-bot/internal/bootstrap"
	"equeue-slip-bot/internal/config"
	"equeue-slip-bot/internal/server"
	"equeue-slip-bot/internal/setup"
	"equeue-slip-bot/pkg/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
)

func main() {
	runSetup := flag.Bool("setup", false, "ask for a bot token and prepare directories before starting")
	flag.Parse()

	if *runSetup {
		token, err := setup.EnsureToken(".env", os.Stdin, os.Stdout)
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		// A stale token in the process environment must not shadow the new one.
		if err := os.Setenv("TELEGRAM_BOT_TOKEN", token); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()
	if !cfg.HasToken() {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set. Run `go run ./cmd/bot -setup` or `go run ./cmd/setup` first.")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("Unable to prepare directories: %v", err)
	}

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Connect to Telegram
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("Unable to connect to Telegram: %v", err)
	}
	container.Logger.Info("BOT", "Authorized", map[string]interface{}{"username": api.Self.UserName})

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.PollTimeout
	updates := api.GetUpdatesChan(u)
	bot := container.NewBot(api)

	// 4. Run Background Services, Bot and Server
	g, gctx := errgroup.WithContext(ctx)

	if err := container.CleanupService.Consume(gctx); err != nil {
		log.Fatalf("Unable to subscribe to %s: %v", events.TopicArtifacts, err)
	}

	g.Go(func() error {
		defer api.StopReceivingUpdates()
		return bot.Run(gctx, updates)
	})

	if cfg.App.HTTPEnabled {
		srv := server.New(cfg, container)
		g.Go(srv.Run)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// 5. Wait for shutdown
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		container.Logger.Error("BOT", "Stopped with error", map[string]interface{}{"error": err.Error()})
	}
	if err := container.PubSub.Close(); err != nil {
		container.Logger.Warn("BOT", "Failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	container.Logger.Info("BOT", "Stopped", nil)
}
