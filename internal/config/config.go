package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                     string
	DatabaseURL              string
	GinMode                  string
	DefaultGoal              int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	Log                      LogConfig
}

// LogConfig controls the slog handler and the optional rotating log file.
// File output is disabled while Dir is empty.
type LogConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func Default() Config {
	return Config{
		Port:                     "8080",
		DatabaseURL:              "file:scoring.db",
		GinMode:                  "release",
		DefaultGoal:              250,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  20,
			MaxBackups: 5,
			MaxAgeDays: 14,
		},
	}
}

func Load() Config {
	cfg := Default()
	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		cfg.Port = raw
	}
	if raw := strings.TrimSpace(os.Getenv("DATABASE_URL")); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := strings.TrimSpace(os.Getenv("GIN_MODE")); raw != "" {
		cfg.GinMode = raw
	}
	if raw := os.Getenv("DEFAULT_GOAL"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DefaultGoal = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		cfg.Log.Level = strings.ToLower(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_DIR")); raw != "" {
		cfg.Log.Dir = raw
	}
	if raw := os.Getenv("LOG_MAX_SIZE_MB"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Log.MaxSizeMB = value
		}
	}
	if raw := os.Getenv("LOG_MAX_BACKUPS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Log.MaxBackups = value
		}
	}
	if raw := os.Getenv("LOG_MAX_AGE_DAYS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Log.MaxAgeDays = value
		}
	}
	if raw := os.Getenv("LOG_COMPRESS"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.Log.Compress = value
		}
	}
	return cfg
}
