package main

import (
	"os"

	"equeue-slip-bot/internal/config"
	"equeue-slip-bot/internal/setup"

	"github.com/fatih/color"
)

const envFile = ".env"

func main() {
	color.Cyan("=== e-queue slip bot setup ===\n")

	if _, err := setup.EnsureToken(envFile, os.Stdin, os.Stdout); err != nil {
		color.Red("Setup failed: %v", err)
		os.Exit(1)
	}

	if err := setup.PrepareDirectories(config.Load(), os.Stdout); err != nil {
		color.Red("Failed to create directories: %v", err)
		os.Exit(1)
	}

	color.Cyan("Start the bot with: go run ./cmd/bot")
}
