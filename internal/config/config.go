// Package config provides configuration for the mentorship service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Collaborators
	NotifierURL    string
	MeetingBaseURL string

	// Join tokens
	TokenSecret string
	TokenTTL    time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from the environment, honoring a local .env file.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:    getEnv("DATABASE_URL", "file:mentorship.db?cache=shared&mode=rwc"),
		NotifierURL:    getEnv("NOTIFIER_URL", ""),
		MeetingBaseURL: getEnv("MEETING_BASE_URL", "https://meet.peptok.ca"),
		TokenSecret:    getEnv("TOKEN_SECRET", "dev-only-secret"),
		TokenTTL:       time.Duration(getEnvInt("TOKEN_TTL_SECONDS", 900)) * time.Second,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
