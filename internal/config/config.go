package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PlaceholderToken is the value shipped in .env.example; treated as unset.
const PlaceholderToken = "your_telegram_bot_token_here"

type Config struct {
	App      AppConfig
	Telegram TelegramConfig
	Paths    PathsConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
	HTTPEnabled bool
}

type TelegramConfig struct {
	Token             string
	PollTimeout       int // seconds
	EchoUnrecognized  bool
	WorkerIdleTimeout time.Duration
	WorkerQueueLength int
}

type PathsConfig struct {
	TempDir   string
	AssetsDir string
	FontsDir  string
	LogsDir   string
}

type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "8080"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/bot.log"),
			HTTPEnabled: getEnvAsBool("HTTP_ENABLED", true),
		},
		Telegram: TelegramConfig{
			Token:             getEnv("TELEGRAM_BOT_TOKEN", ""),
			PollTimeout:       getEnvAsInt("TELEGRAM_POLL_TIMEOUT", 60),
			EchoUnrecognized:  getEnvAsBool("BOT_ECHO_UNRECOGNIZED", false),
			WorkerIdleTimeout: getEnvAsDuration("BOT_WORKER_IDLE_TIMEOUT", 5*time.Minute),
			WorkerQueueLength: getEnvAsInt("BOT_WORKER_QUEUE_LENGTH", 16),
		},
		Paths: PathsConfig{
			TempDir:   getEnv("TEMP_DIR", "temp"),
			AssetsDir: getEnv("ASSETS_DIR", "assets"),
			FontsDir:  getEnv("FONTS_DIR", "fonts"),
			LogsDir:   getEnv("LOGS_DIR", "logs"),
		},
		Session: SessionConfig{
			TTL:             getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CleanupInterval: getEnvAsDuration("SESSION_CLEANUP_INTERVAL", 10*time.Minute),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HasToken reports whether a usable bot token is configured.
func (c *Config) HasToken() bool {
	return c.Telegram.Token != "" && c.Telegram.Token != PlaceholderToken
}

// EnsureDirectories creates every working directory the bot writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.TempDir, c.Paths.AssetsDir, c.Paths.FontsDir, c.Paths.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// TokenLooksValid is the loose shape check BotFather tokens pass:
// "123456789:ABCdef...".
func TokenLooksValid(token string) bool {
	token = strings.TrimSpace(token)
	return len(token) > 20 && strings.Contains(token, ":")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
