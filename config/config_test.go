package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DISCORD_BOT_TOKEN",
		"DISCORD_GUILD_ID",
		"PORT",
		"CORS_ALLOWED_ORIGINS",
		"ENVIRONMENT",
		"SERVER_LOGS_URL",
		"FETCH_CONCURRENCY",
		"SLACK_ALERT_WEBHOOK_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing bot token", func(t *testing.T) {
		clearEnv(t)

		config, err := LoadConfig()

		assert.Nil(t, config)
		assert.EqualError(t, err, "DISCORD_BOT_TOKEN is not set")
	})

	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DISCORD_BOT_TOKEN", "token")

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", config.Port)
		assert.Equal(t, "*", config.CORSAllowedOrigins)
		assert.Equal(t, "dev", config.Environment)
		assert.Equal(t, 4, config.FetchConcurrency)
		assert.Equal(t, "token", config.DiscordConfig.BotToken)
		assert.Empty(t, config.DiscordConfig.GuildID)
		assert.False(t, config.SlackAlertsConfig.IsConfigured())
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DISCORD_BOT_TOKEN", "token")
		t.Setenv("DISCORD_GUILD_ID", "100")
		t.Setenv("PORT", "9090")
		t.Setenv("FETCH_CONCURRENCY", "8")
		t.Setenv("SLACK_ALERT_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/X")

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "9090", config.Port)
		assert.Equal(t, 8, config.FetchConcurrency)
		assert.Equal(t, "100", config.DiscordConfig.GuildID)
		assert.True(t, config.SlackAlertsConfig.IsConfigured())
	})

	t.Run("invalid fetch concurrency", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DISCORD_BOT_TOKEN", "token")
		t.Setenv("FETCH_CONCURRENCY", "zero")

		_, err := LoadConfig()

		assert.ErrorContains(t, err, "FETCH_CONCURRENCY")
	})
}
