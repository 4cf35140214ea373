// Package config provides configuration management for the F1 telemetry viewer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// Supported cache drivers
const (
	CacheDriverSQLite   = "sqlite3"
	CacheDriverPostgres = "pgx"
	CacheDriverNone     = "none"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Cache    CacheConfig
	Snapshot SnapshotConfig
	Viewer   ViewerConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string
	LoadRateLimit  int64         // Loads allowed per client within LoadRatePeriod
	LoadRatePeriod time.Duration // Window for LoadRateLimit
}

// ProviderConfig holds settings for the telemetry data provider
type ProviderConfig struct {
	BaseURL           string        // OpenF1 API root
	RequestTimeout    time.Duration // HTTP client timeout, zero disables it
	RequestsPerSecond float64       // Outbound request pacing
	UserAgent         string
}

// CacheConfig holds the provider response cache configuration
type CacheConfig struct {
	Driver                string        // "sqlite3", "pgx" or "none"
	DSN                   string        // File path for sqlite3, connection string for pgx
	TTL                   time.Duration // Zero keeps entries forever
	DiscoveryTTL          time.Duration // Lifetime of session, meeting and driver listings; zero never caches them
	MaxConnections        int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// SnapshotConfig holds the CSV snapshot settings
type SnapshotConfig struct {
	Enabled bool
	Path    string
}

// ViewerConfig holds defaults for the animation
type ViewerConfig struct {
	DefaultStride int
	FrameDuration time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // production or development
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	dsn, err := LoadSecret("CACHE_DSN", "cache/openf1.db")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			LoadRateLimit:  int64(getEnvAsInt("LOAD_RATE_LIMIT", 20)),
			LoadRatePeriod: getEnvAsDuration("LOAD_RATE_PERIOD", "1m"),
		},
		Provider: ProviderConfig{
			BaseURL:           strings.TrimRight(getEnv("OPENF1_BASE_URL", "https://api.openf1.org/v1"), "/"),
			RequestTimeout:    getEnvAsDuration("PROVIDER_REQUEST_TIMEOUT", "0s"),
			RequestsPerSecond: getEnvAsFloat("PROVIDER_REQUESTS_PER_SECOND", 3),
			UserAgent:         getEnv("PROVIDER_USER_AGENT", "f1-telemetry-viewer/1.0"),
		},
		Cache: CacheConfig{
			Driver:                getEnv("CACHE_DRIVER", CacheDriverSQLite),
			DSN:                   dsn,
			TTL:                   getEnvAsDuration("CACHE_TTL", "0s"),
			DiscoveryTTL:          getEnvAsDuration("CACHE_DISCOVERY_TTL", "1h"),
			MaxConnections:        getEnvAsInt("CACHE_MAX_CONNECTIONS", 5),
			MaxIdleConnections:    getEnvAsInt("CACHE_MAX_IDLE_CONNECTIONS", 2),
			ConnectionMaxLifetime: getEnvAsDuration("CACHE_CONNECTION_MAX_LIFETIME", "5m"),
		},
		Snapshot: SnapshotConfig{
			Enabled: getEnvAsBool("SNAPSHOT_ENABLED", true),
			Path:    getEnv("SNAPSHOT_PATH", "data/telemetry.csv"),
		},
		Viewer: ViewerConfig{
			DefaultStride: getEnvAsInt("DEFAULT_STRIDE", 50),
			FrameDuration: getEnvAsDuration("FRAME_DURATION", "30ms"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "production"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case CacheDriverSQLite, CacheDriverPostgres:
		if c.Cache.DSN == "" {
			return fmt.Errorf("CACHE_DSN is required when CACHE_DRIVER=%s", c.Cache.Driver)
		}
	case CacheDriverNone:
	default:
		return fmt.Errorf("unsupported CACHE_DRIVER %q", c.Cache.Driver)
	}

	if c.Cache.DiscoveryTTL < 0 {
		return errors.New("CACHE_DISCOVERY_TTL must not be negative")
	}

	if c.Provider.BaseURL == "" {
		return errors.New("OPENF1_BASE_URL must not be empty")
	}
	if c.Provider.RequestsPerSecond <= 0 {
		return errors.New("PROVIDER_REQUESTS_PER_SECOND must be positive")
	}
	if st := c.Viewer.DefaultStride; st < models.MinStride || st > models.MaxStride || st%models.StrideStep != 0 {
		return fmt.Errorf("DEFAULT_STRIDE must be a multiple of %d between %d and %d",
			models.StrideStep, models.MinStride, models.MaxStride)
	}
	if c.Viewer.FrameDuration <= 0 {
		return errors.New("FRAME_DURATION must be positive")
	}
	if c.Snapshot.Enabled && c.Snapshot.Path == "" {
		return errors.New("SNAPSHOT_PATH is required when SNAPSHOT_ENABLED=true")
	}
	if c.Log.Format != "production" && c.Log.Format != "development" {
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat gets an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}
