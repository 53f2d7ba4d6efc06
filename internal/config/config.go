package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type SQLiteConfig struct {
	Path string
}

type LogConfig struct {
	File  string
	Level string
}

type AppConfig struct {
	// StatsDays is the default window for the revenue-by-day series.
	StatsDays int
}

type Config struct {
	App    AppConfig
	SQLite SQLiteConfig
	Log    LogConfig
}

// Load reads configuration from the environment, optionally preloading a .env
// file. Every key has a default, so an empty environment is a valid one.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	} else {
		// .env рядом с бинарником — необязательный
		_ = godotenv.Load()
	}

	cfg := &Config{}
	cfg.SQLite.Path = getEnv("DB_PATH", "delivery.db")
	cfg.Log.File = getEnv("LOG_FILE", "delivery_activity.log")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.App.StatsDays = getEnvAsInt("STATS_DAYS", 30)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
