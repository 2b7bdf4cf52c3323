package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv(t *testing.T) {
	clearEnv := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{
			"RECIPE_DIR", "DATABASE_PATH", "PLANNER_SEED",
			"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
			"GHOST_API_URL", "GHOST_ADMIN_API_KEY",
		} {
			t.Setenv(key, "")
		}
	}

	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "recipes", cfg.RecipeDir)
		assert.Equal(t, "data/meal-planner.db", cfg.DatabasePath)
		assert.Nil(t, cfg.Seed)
		assert.False(t, cfg.TelegramEnabled())
		assert.False(t, cfg.GhostEnabled())
	})

	t.Run("Success", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RECIPE_DIR", "/tmp/recipes")
		t.Setenv("DATABASE_PATH", "/tmp/plans.db")
		t.Setenv("PLANNER_SEED", "42")
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("TELEGRAM_CHAT_ID", "-1001")
		t.Setenv("GHOST_API_URL", "http://ghost.test/")
		t.Setenv("GHOST_ADMIN_API_KEY", "id:abcd")

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/recipes", cfg.RecipeDir)
		assert.Equal(t, "/tmp/plans.db", cfg.DatabasePath)
		require.NotNil(t, cfg.Seed)
		assert.Equal(t, int64(42), *cfg.Seed)
		assert.Equal(t, int64(-1001), cfg.TelegramChatID)
		assert.True(t, cfg.TelegramEnabled())
		assert.Equal(t, "http://ghost.test", cfg.GhostURL)
		assert.True(t, cfg.GhostEnabled())
	})

	t.Run("InvalidSeed", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PLANNER_SEED", "abc")

		_, err := NewFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PLANNER_SEED must be an integer")
	})

	t.Run("InvalidChatID", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("TELEGRAM_CHAT_ID", "chat")

		_, err := NewFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID must be an integer")
	})

	t.Run("TelegramTokenWithoutChat", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")

		_, err := NewFromEnv()
		require.Error(t, err)
		assert.Equal(t, "TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together", err.Error())
	})

	t.Run("GhostURLWithoutKey", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GHOST_API_URL", "http://ghost.test")

		_, err := NewFromEnv()
		require.Error(t, err)
		assert.Equal(t, "GHOST_API_URL and GHOST_ADMIN_API_KEY must be set together", err.Error())
	})
}
