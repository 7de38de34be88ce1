package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	GeminiAPIKey string
	GroqAPIKey   string

	// Telegram Config (optional for the CLI, required for the bot)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64

	DatabasePath string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if groqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")
	telegramAllowUserIDStr := os.Getenv("TELEGRAM_ALLOW_USER_ID")
	var telegramAllowUserID int64
	if telegramAllowUserIDStr != "" {
		fmt.Sscanf(telegramAllowUserIDStr, "%d", &telegramAllowUserID)
	}

	databasePath := os.Getenv("SHEDAI_DB_PATH")
	if databasePath == "" {
		databasePath = "data/shedai.db"
	}

	return &Config{
		GeminiAPIKey:        geminiAPIKey,
		GroqAPIKey:          groqAPIKey,
		TelegramBotToken:    telegramBotToken,
		TelegramWebhookURL:  telegramWebhookURL,
		TelegramAllowUserID: telegramAllowUserID,
		DatabasePath:        databasePath,
	}, nil
}
