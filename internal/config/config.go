package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	DatabaseDSN   string
	Env           string
	AdminEmail    string
	AdminPassword string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
// An empty DATABASE_DSN selects the embedded sqlite store, the single-user
// deployment default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			Logger().Warnf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
