package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken string
	// GuildID scopes command registration to one guild; empty registers globally
	GuildID string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != ""
}

type SlackAlertsConfig struct {
	WebhookURL string
}

// IsConfigured returns true if error alerts can be posted to Slack
func (c SlackAlertsConfig) IsConfigured() bool {
	return c.WebhookURL != ""
}

type AppConfig struct {
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	ServerLogsURL      string
	FetchConcurrency   int // Parallel reaction fetches per query, default 4

	DiscordConfig     DiscordConfig
	SlackAlertsConfig SlackAlertsConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	fetchConcurrency, err := getEnvIntWithDefault("FETCH_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		ServerLogsURL:      getEnvWithDefault("SERVER_LOGS_URL", ""),
		FetchConcurrency:   fetchConcurrency,

		DiscordConfig: DiscordConfig{
			BotToken: botToken,
			GuildID:  os.Getenv("DISCORD_GUILD_ID"),
		},

		SlackAlertsConfig: SlackAlertsConfig{
			WebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
	}

	if config.DiscordConfig.GuildID != "" {
		log.Printf("✅ Discord commands will be registered in guild %s", config.DiscordConfig.GuildID)
	} else {
		log.Printf("✅ Discord commands will be registered globally")
	}

	if config.SlackAlertsConfig.IsConfigured() {
		log.Printf("✅ Slack error alerts configured")
	} else {
		log.Printf("⚠️ Slack error alerts not configured - errors will only be logged")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return parsed, nil
}
