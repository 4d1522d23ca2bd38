// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultArchiveURL is the NASA Exoplanet Archive TAP synchronous endpoint
const DefaultArchiveURL = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync"

// Config represents the application configuration
type Config struct {
	// Scoring settings
	ChunkSize      int  `yaml:"chunk_size"`
	WorkerPoolSize int  `yaml:"worker_pool_size"` // 0 means use runtime.NumCPU()
	DisplayLimit   int  `yaml:"display_limit"`
	VerifyResults  bool `yaml:"verify_results"`

	// Archive client
	ArchiveURL            string `yaml:"archive_url"`
	ArchiveTimeoutSeconds int    `yaml:"archive_timeout_seconds"`
	ArchiveRetryMax       int    `yaml:"archive_retry_max"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:             512,
		WorkerPoolSize:        0,
		DisplayLimit:          100,
		VerifyResults:         true,
		ArchiveURL:            DefaultArchiveURL,
		ArchiveTimeoutSeconds: 60,
		ArchiveRetryMax:       2,
		LogLevel:              "info",
		LogFormat:             "json",
	}
}

// LoadConfig loads configuration from a .env file, an optional YAML file at
// path and environment variables, in increasing precedence
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.ChunkSize = getEnvAsInt("CHUNK_SIZE", c.ChunkSize)
	c.WorkerPoolSize = getEnvAsInt("WORKER_POOL_SIZE", c.WorkerPoolSize)
	c.DisplayLimit = getEnvAsInt("DISPLAY_LIMIT", c.DisplayLimit)
	c.VerifyResults = getEnvAsBool("VERIFY_RESULTS", c.VerifyResults)
	c.ArchiveURL = getEnv("ARCHIVE_URL", c.ArchiveURL)
	c.ArchiveTimeoutSeconds = getEnvAsInt("ARCHIVE_TIMEOUT_SECONDS", c.ArchiveTimeoutSeconds)
	c.ArchiveRetryMax = getEnvAsInt("ARCHIVE_RETRY_MAX", c.ArchiveRetryMax)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return errors.New("chunk size must be positive")
	}

	if c.WorkerPoolSize < 0 {
		return errors.New("worker pool size cannot be negative")
	}

	if c.DisplayLimit < 0 {
		return errors.New("display limit cannot be negative")
	}

	if c.ArchiveURL == "" {
		return errors.New("archive URL is required")
	}

	if c.ArchiveTimeoutSeconds <= 0 {
		return errors.New("archive timeout must be positive")
	}

	if c.ArchiveRetryMax < 0 {
		return errors.New("archive retry attempts cannot be negative")
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	return nil
}

// ArchiveTimeout returns the archive request timeout
func (c *Config) ArchiveTimeout() time.Duration {
	return time.Duration(c.ArchiveTimeoutSeconds) * time.Second
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
