package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, loaded from the environment with
// an optional .env file for development.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// DataDir holds users.json, settings.json, classes.json and absences/.
	DataDir string

	SessionTTL time.Duration

	// RedisURL switches the session store from process memory to redis
	// when set.
	RedisURL string

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DataDir:     getEnv("DATA_DIR", "data"),
		RedisURL:    os.Getenv("REDIS_URL"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			From:     getEnv("SMTP_FROM", "no-reply@attendance.local"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	ttlHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "12"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %q", getEnv("SESSION_TTL_HOURS", "12"))
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL: %q", s)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
