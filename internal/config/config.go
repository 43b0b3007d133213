package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath    string
	LogLevel        string
	Port            string
	APIToken        string
	ShoppingListDir string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set take precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	config := Config{
		DatabasePath:    envOrDefault("DATABASE_PATH", "./data/meal-planner.db"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		Port:            envOrDefault("PORT", "8080"),
		APIToken:        os.Getenv("API_TOKEN"),
		ShoppingListDir: envOrDefault("SHOPPING_LIST_DIR", "."),
	}

	if _, err := parseLevel(config.LogLevel); err != nil {
		return Config{}, err
	}

	return config, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (config Config) SlogLevel() slog.Level {
	level, err := parseLevel(config.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", value)
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
