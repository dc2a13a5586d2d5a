package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"palette"`
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`

	// External classifier; moderation runs local-only when the URL is empty.
	ClassifierURL     string        `envconfig:"CLASSIFIER_URL"`
	ClassifierAPIKey  string        `envconfig:"CLASSIFIER_API_KEY"`
	ClassifierTimeout time.Duration `envconfig:"CLASSIFIER_TIMEOUT" default:"3s"`

	ModerationThreshold  float64 `envconfig:"MODERATION_THRESHOLD" default:"0.70"`
	SubmissionDailyLimit int     `envconfig:"SUBMISSION_DAILY_LIMIT" default:"10"`

	// Flagged-content notification channels; each is optional.
	FlagWebhookURL string `envconfig:"FLAG_WEBHOOK_URL"`
	BotGatewayURL  string `envconfig:"BOT_GATEWAY_URL"`
	BotToken       string `envconfig:"BOT_TOKEN"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
