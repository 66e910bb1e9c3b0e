// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the service configuration. Values may come from a JSON
// file, from the environment, or both; the environment wins.
type Config struct {
	// Server
	Port int `json:"port,omitempty"`

	// Storage
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	RedisAddr     string `json:"redis_addr,omitempty"`     // Redis host:port for draft storage (optional)
	RedisPassword string `json:"redis_password,omitempty"` // Redis password
	RedisDB       int    `json:"redis_db,omitempty"`       // Redis database number

	// Integrations
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key (optional; AI features off without it)
	ChromePath string `json:"chrome_path,omitempty"` // Chrome binary for PDF export

	// Limits
	MaxExportConcurrency int64 `json:"max_export_concurrency,omitempty"` // Simultaneous Chrome sessions
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables.
func FromEnv() *Config {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		ChromePath:    os.Getenv("CHROME_PATH"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if db, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.RedisDB = db
	}
	if n, err := strconv.ParseInt(os.Getenv("MAX_EXPORT_CONCURRENCY"), 10, 64); err == nil {
		cfg.MaxExportConcurrency = n
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required")
	}
	if c.MaxExportConcurrency < 0 {
		return fmt.Errorf("config error: 'max_export_concurrency' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for environment overrides.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.MaxExportConcurrency == 0 {
		result.MaxExportConcurrency = defaults.MaxExportConcurrency
	}

	return result
}
