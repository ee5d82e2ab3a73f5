package config

import (
	"errors"
	"os"
	"time"
)

// Config is built once at startup and handed to the components that
// need it. Nothing reads the environment after Load returns.
type Config struct {
	DatabaseURL string
	HTTPPort    string
	LogLevel    string

	JWTSecret string
	TokenTTL  time.Duration

	AssistantAPIKey  string
	AssistantBaseURL string
	AssistantTimeout time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		HTTPPort:         os.Getenv("HTTP_PORT"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         24 * time.Hour,
		AssistantAPIKey:  os.Getenv("ASSISTANT_API_KEY"),
		AssistantBaseURL: os.Getenv("ASSISTANT_BASE_URL"),
		AssistantTimeout: 30 * time.Second,
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is empty")
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}
	if s := os.Getenv("JWT_EXPIRES_IN"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.TokenTTL = d
		}
	}
	if s := os.Getenv("ASSISTANT_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.AssistantTimeout = d
		}
	}
	return cfg, nil
}
