package config

import (
	"fmt"
	"os"
	"strings"
)

// Env holds secrets and IDs that come from the environment (or .env).
type Env struct {
	BotToken     string
	LogChannelID string
	// VoiceTextChannelID is read but not used by any handler yet.
	VoiceTextChannelID string
	GiphyAPIKey        string
	QuestionFile       string
	RedisURL           string
}

const defaultQuestionFile = "bot.txt"

func LoadEnv() Env {
	env := Env{
		BotToken:           strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		LogChannelID:       strings.TrimSpace(os.Getenv("LOG_CHANNEL_ID")),
		VoiceTextChannelID: strings.TrimSpace(os.Getenv("VOICE_TEXT_CHANNEL_ID")),
		GiphyAPIKey:        strings.TrimSpace(os.Getenv("GIPHY_API_KEY")),
		QuestionFile:       strings.TrimSpace(os.Getenv("QUESTION_FILE")),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
	}
	if env.QuestionFile == "" {
		env.QuestionFile = defaultQuestionFile
	}
	return env
}

// Validate reports the first missing required variable.
func (e Env) Validate() error {
	if e.BotToken == "" {
		return fmt.Errorf("missing required environment variable: BOT_TOKEN")
	}
	return nil
}

// AuthToken returns the token with the "Bot " prefix discordgo expects.
func (e Env) AuthToken() string {
	if strings.HasPrefix(strings.ToLower(e.BotToken), "bot ") {
		return e.BotToken
	}
	return "Bot " + e.BotToken
}
