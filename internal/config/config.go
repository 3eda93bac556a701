package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const devSecret = "dev-secret-change-in-production"

type Config struct {
	Env           string
	DBPath        string
	SessionSecret string
	SessionExpiry time.Duration
	MessagesFile  string

	// AllowLegacyPlaintext keeps pre-hash credential rows usable during
	// migration. Leave off unless the database still carries them.
	AllowLegacyPlaintext bool
}

func Load() Config {
	cfg := Config{
		Env:                  getEnv("ENV", "development"),
		DBPath:               getEnv("TASKBLOC_DB", ""),
		SessionSecret:        getEnv("SESSION_SECRET", devSecret),
		SessionExpiry:        24 * time.Hour,
		MessagesFile:         getEnv("MESSAGES_FILE", ""),
		AllowLegacyPlaintext: getBoolEnv("ALLOW_LEGACY_PLAINTEXT"),
	}

	if cfg.Env == "production" && cfg.SessionSecret == devSecret {
		slog.Error("SESSION_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "yes" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
