package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	JWT     JWTConfig
	TimeAPI TimeAPIConfig
	Cache   CacheConfig
	Report  ReportConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// JWTConfig holds JWT verification configuration. Tokens are minted by
// the identity provider; this service only verifies them.
type JWTConfig struct {
	Secret string
}

// TimeAPIConfig points at the remote time-tracking API.
type TimeAPIConfig struct {
	BaseURL      string
	ServiceToken string
	Timeout      time.Duration
}

// CacheConfig controls the optional snapshot persistence. With an
// empty DSN the engine runs memory-only.
type CacheConfig struct {
	DSN            string
	SessionMaxIdle time.Duration
}

type ReportConfig struct {
	CapacityHours        float64
	BoardRefreshInterval time.Duration
	BoardMaxAge          time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	timeout, err := time.ParseDuration(getEnv("TIME_API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_API_TIMEOUT: %w", err)
	}

	config.TimeAPI = TimeAPIConfig{
		BaseURL:      getEnv("TIME_API_BASE_URL", ""),
		ServiceToken: getEnv("TIME_API_SERVICE_TOKEN", ""),
		Timeout:      timeout,
	}

	maxIdle, err := time.ParseDuration(getEnv("SESSION_MAX_IDLE", "8h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_MAX_IDLE: %w", err)
	}

	config.Cache = CacheConfig{
		DSN:            getEnv("SNAPSHOT_DATABASE_URL", ""),
		SessionMaxIdle: maxIdle,
	}

	capacityHours, err := strconv.ParseFloat(getEnv("CAPACITY_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CAPACITY_HOURS: %w", err)
	}

	boardRefresh, err := time.ParseDuration(getEnv("BOARD_REFRESH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOARD_REFRESH_INTERVAL: %w", err)
	}

	boardMaxAge, err := time.ParseDuration(getEnv("BOARD_MAX_AGE", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOARD_MAX_AGE: %w", err)
	}

	config.Report = ReportConfig{
		CapacityHours:        capacityHours,
		BoardRefreshInterval: boardRefresh,
		BoardMaxAge:          boardMaxAge,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.TimeAPI.BaseURL == "" {
		return fmt.Errorf("TIME_API_BASE_URL is required")
	}
	if c.Report.CapacityHours <= 0 {
		return fmt.Errorf("CAPACITY_HOURS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
