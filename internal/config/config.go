package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"rhystmorgan/clientDesk/internal/api"
	"rhystmorgan/clientDesk/internal/filter"
)

type AppConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Collection string        `yaml:"collection"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxResults int           `yaml:"max_results"`
	// MaxResponseMB caps a backend response body, in MiB.
	MaxResponseMB int    `yaml:"max_response_mb"`
	ExportDir     string `yaml:"export_dir"`
	LogLevel      string `yaml:"log_level"`
	Debug         bool   `yaml:"debug"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when it does not exist), then CLIENTDESK_* environment variables.
func Load(path string) (*AppConfig, error) {
	config := GetDefaultConfig()

	if path != "" {
		if err := config.mergeFile(path); err != nil {
			return nil, err
		}
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *AppConfig) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *AppConfig) applyEnv() {
	c.BaseURL = getEnvOrDefault("CLIENTDESK_BASE_URL", c.BaseURL)
	c.Collection = getEnvOrDefault("CLIENTDESK_COLLECTION", c.Collection)
	c.Timeout = parseDurationOrDefault("CLIENTDESK_TIMEOUT", c.Timeout)
	c.MaxResults = parseIntOrDefault("CLIENTDESK_MAX_RESULTS", c.MaxResults)
	c.MaxResponseMB = parseIntOrDefault("CLIENTDESK_MAX_RESPONSE_MB", c.MaxResponseMB)
	c.ExportDir = getEnvOrDefault("CLIENTDESK_EXPORT_DIR", c.ExportDir)
	c.LogLevel = getEnvOrDefault("CLIENTDESK_LOG_LEVEL", c.LogLevel)
	if IsDebugEnabled() {
		c.Debug = true
	}
}

func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL: %q (must be http or https)", c.BaseURL)
	}

	if strings.TrimSpace(c.Collection) == "" {
		return fmt.Errorf("collection path must not be empty")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive, got: %d", c.MaxResults)
	}

	if c.MaxResponseMB <= 0 {
		return fmt.Errorf("max response size must be positive, got: %d MB", c.MaxResponseMB)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", c.LogLevel)
	}

	return nil
}

func (c *AppConfig) ToAPIConfig() api.Config {
	return api.Config{
		BaseURL:    c.BaseURL,
		Collection: c.Collection,
		Timeout:    c.Timeout,

		MaxResponseSize: int64(c.MaxResponseMB) << 20,
	}
}

// Save writes the configuration as YAML, used by `deskterm config init`.
func (c *AppConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		BaseURL:    api.DefaultBaseURL,
		Collection: api.DefaultCollection,
		Timeout:    api.DefaultTimeout,
		MaxResults: filter.DefaultMaxResults,

		MaxResponseMB: api.DefaultMaxResponseSize >> 20,
		LogLevel:      "info",
	}
}

func IsDebugEnabled() bool {
	return os.Getenv("CLIENTDESK_DEBUG") == "true" || os.Getenv("CLIENTDESK_DEBUG") == "1"
}
