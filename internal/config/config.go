package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultRecipeDir    = "recipes"
	defaultDatabasePath = "data/meal-planner.db"
)

// Config holds the configuration for the application.
type Config struct {
	RecipeDir    string
	DatabasePath string

	// Seed makes planning runs reproducible. Nil means a fresh random seed.
	Seed *int64

	// Telegram Config (optional)
	TelegramBotToken string
	TelegramChatID   int64

	// Ghost Config (optional)
	GhostURL      string
	GhostAdminKey string
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		RecipeDir:     getEnv("RECIPE_DIR", defaultRecipeDir),
		DatabasePath:  getEnv("DATABASE_PATH", defaultDatabasePath),
		GhostURL:      strings.TrimRight(strings.TrimSpace(os.Getenv("GHOST_API_URL")), "/"),
		GhostAdminKey: strings.TrimSpace(os.Getenv("GHOST_ADMIN_API_KEY")),
	}

	if seedStr := strings.TrimSpace(os.Getenv("PLANNER_SEED")); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("PLANNER_SEED must be an integer: %w", err)
		}
		cfg.Seed = &seed
	}

	cfg.TelegramBotToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if chatIDStr := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = chatID
	}
	if (cfg.TelegramBotToken == "") != (cfg.TelegramChatID == 0) {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}

	if (cfg.GhostURL == "") != (cfg.GhostAdminKey == "") {
		return nil, fmt.Errorf("GHOST_API_URL and GHOST_ADMIN_API_KEY must be set together")
	}

	return cfg, nil
}

// TelegramEnabled reports whether plans can be sent to a Telegram chat.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// GhostEnabled reports whether plans can be published to Ghost.
func (c *Config) GhostEnabled() bool {
	return c.GhostURL != "" && c.GhostAdminKey != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
