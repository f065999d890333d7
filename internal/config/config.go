// Package config loads the service configuration from the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kode4food/strand/pkg/journal"
)

type (
	// Config holds configuration settings for the flow service
	Config struct {
		// API Server
		APIHost  string
		APIPort  int
		LogLevel string

		// Journal
		Journal JournalConfig

		// Shutdown
		ShutdownTimeout time.Duration
	}

	// JournalConfig selects and connects the step journal backend. When
	// Redis is false the in-process memory journal is used
	JournalConfig struct {
		Redis bool
		Store journal.RedisConfig
	}
)

const (
	DefaultAPIPort = 8080
	DefaultAPIHost = "0.0.0.0"
	MaxTCPPort     = 65535

	DefaultRedisEndpoint = "localhost:6379"
	DefaultRedisDB       = 0
	DefaultRedisPrefix   = journal.DefaultPrefix

	DefaultShutdownTimeout = 10 * time.Second
	MaxShutdownTimeout     = 5 * time.Minute
)

var (
	ErrInvalidAPIPort         = errors.New("invalid API port")
	ErrInvalidShutdownTimeout = errors.New(
		"shutdown timeout must be positive",
	)
)

// NewDefaultConfig creates a configuration with sensible defaults for the
// API server and journal
func NewDefaultConfig() *Config {
	return &Config{
		APIHost: DefaultAPIHost,
		APIPort: DefaultAPIPort,
		Journal: JournalConfig{
			Store: journal.RedisConfig{
				Addr:     DefaultRedisEndpoint,
				Password: "",
				DB:       DefaultRedisDB,
				Prefix:   DefaultRedisPrefix,
			},
		},
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        "info",
	}
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed.
func (c *Config) LoadFromEnv() error {
	if apiHost := os.Getenv("API_HOST"); apiHost != "" {
		c.APIHost = apiHost
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}

	if j := os.Getenv("JOURNAL_BACKEND"); j != "" {
		c.Journal.Redis = j == "redis"
	}
	if addr := os.Getenv("JOURNAL_REDIS_ADDR"); addr != "" {
		c.Journal.Store.Addr = addr
	}
	if password := os.Getenv("JOURNAL_REDIS_PASSWORD"); password != "" {
		c.Journal.Store.Password = password
	}
	if dbStr := os.Getenv("JOURNAL_REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			c.Journal.Store.DB = db
		}
	}
	if prefix := os.Getenv("JOURNAL_REDIS_PREFIX"); prefix != "" {
		c.Journal.Store.Prefix = prefix
	}

	var shutdownSecs int64
	if err := loadEnvInt(
		"SHUTDOWN_TIMEOUT", &shutdownSecs, 0,
		int64(MaxShutdownTimeout/time.Second),
	); err != nil {
		return err
	}
	if shutdownSecs > 0 {
		c.ShutdownTimeout = time.Duration(shutdownSecs) * time.Second
	}

	return nil
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	return nil
}

// loadEnvInt reads key from the environment, parses it as an integer, and
// sets *dst if the value is in the range (min, max). Returns an error if
// the value cannot be parsed or falls outside the valid range.
func loadEnvInt[T ~int | ~int64](key string, dst *T, min, max T) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	tv := T(v)
	if tv <= min || tv > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, tv, min+1, max)
	}
	*dst = tv
	return nil
}
