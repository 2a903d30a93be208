package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port              string
	RequestsPerMinute int
	ShutdownTimeout   time.Duration

	// Store
	DataBackend  string // "sheets" or "memory"
	StoreTimeout time.Duration

	// Session gate
	AuthMode string // "tokeninfo" or "insecure"

	// Logging
	LogLevel string
}

const (
	BackendSheets = "sheets"
	BackendMemory = "memory"

	AuthTokenInfo = "tokeninfo"
	AuthInsecure  = "insecure"
)

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		RequestsPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataBackend:  getEnv("DATA_BACKEND", BackendSheets),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 15*time.Second),

		AuthMode: getEnv("AUTH_MODE", AuthTokenInfo),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and returns an error naming every
// invalid value.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendSheets, BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]", c.DataBackend, BackendSheets, BackendMemory))
	}

	switch c.AuthMode {
	case AuthTokenInfo, AuthInsecure:
	default:
		errs = append(errs, fmt.Sprintf("invalid auth mode '%s': must be one of [%s %s]", c.AuthMode, AuthTokenInfo, AuthInsecure))
	}

	if c.RequestsPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RequestsPerMinute))
	}
	if c.StoreTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid store timeout %v: must be at least 1 second", c.StoreTimeout))
	}
	if c.ShutdownTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// SlogLevel maps the configured log level string to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
