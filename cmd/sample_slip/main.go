package main

import (
	"os"
	"time"

	"equeue-slip-bot/internal/config"
	"equeue-slip-bot/internal/entity"
	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/pkg/artifact"
	"equeue-slip-bot/pkg/document"

	"github.com/fatih/color"
)

// sampleDate matches the examples shown in the bot prompts.
const sampleDate = "04.03.2025"

func main() {
	color.Cyan("Generating sample slip\n")

	cfg := config.Load()
	if err := cfg.EnsureDirectories(); err != nil {
		color.Red("Failed to prepare directories: %v", err)
		os.Exit(1)
	}

	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer log.Sync()

	registry := document.NewRegistry(cfg.Paths.FontsDir, cfg.Paths.AssetsDir, log)
	renderer := document.NewRenderer(registry, artifact.NewFileStore(cfg.Paths.TempDir), log)

	form := entity.NewBookingForm(time.Now())
	form.Date = sampleDate

	art, err := renderer.Render(form)
	if err != nil {
		color.Red("Render failed: %v", err)
		os.Exit(1)
	}

	info, err := os.Stat(art.Path)
	if err != nil {
		color.Red("Slip written but not readable: %v", err)
		os.Exit(1)
	}

	color.Green("Slip created: %s", art.Path)
	color.Green("Size: %.1f KB", float64(info.Size())/1024)
	color.Yellow("QR payload: %s", art.Payload)
}
