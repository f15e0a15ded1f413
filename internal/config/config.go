// Package config provides configuration management for the DeBank scanner.
// It loads configuration from environment variables and .env files, with an
// optional YAML file layered on top.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/debank-scanner/internal/adapter"
)

// DefaultBaseURL is the public DeBank API entrypoint
const DefaultBaseURL = "https://api.debank.com/"

// Config holds all application configuration
type Config struct {
	DeBank  DeBankConfig  `yaml:"debank"`
	Polling PollingConfig `yaml:"polling"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DeBankConfig holds API client configuration
type DeBankConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
	Proxies []string      `yaml:"proxies"`
}

// PollingConfig holds the job polling settings for asynchronous NFT endpoints
type PollingConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	Delay       time.Duration `yaml:"delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds the optional Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoadConfig loads configuration from .env file and environment variables.
// When DEBANK_CONFIG_FILE is set, that YAML file overrides the loaded values.
func LoadConfig() (*Config, error) {
	// Load .env file (optional)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		DeBank: DeBankConfig{
			BaseURL: getEnv("DEBANK_BASE_URL", DefaultBaseURL),
			Timeout: getEnvAsDuration("DEBANK_TIMEOUT", 30*time.Second),
			Proxies: getEnvAsList("DEBANK_PROXIES"),
		},
		Polling: PollingConfig{
			MaxAttempts: getEnvAsInt("DEBANK_POLL_ATTEMPTS", 3),
			Delay:       getEnvAsDuration("DEBANK_POLL_DELAY", 3*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", false),
			Addr:    getEnv("METRICS_ADDR", ":9090"),
		},
	}

	if path := getEnv("DEBANK_CONFIG_FILE", ""); path != "" {
		if err := config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFile overlays the YAML file at path onto the config.
// Keys missing from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration can build a working client
func (c *Config) Validate() error {
	u, err := url.Parse(c.DeBank.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid DeBank base URL %q", c.DeBank.BaseURL)
	}
	if !strings.HasSuffix(c.DeBank.BaseURL, "/") {
		c.DeBank.BaseURL += "/"
	}
	if c.DeBank.Timeout <= 0 {
		return fmt.Errorf("DeBank timeout must be positive, got %s", c.DeBank.Timeout)
	}
	if c.Polling.MaxAttempts <= 0 {
		return fmt.Errorf("polling attempts must be positive, got %d", c.Polling.MaxAttempts)
	}
	if c.Polling.Delay < 0 {
		return fmt.Errorf("polling delay must not be negative, got %s", c.Polling.Delay)
	}
	for _, proxy := range c.DeBank.Proxies {
		if _, err := adapter.NormalizeProxy(proxy); err != nil {
			return fmt.Errorf("invalid proxy %q: %w", proxy, err)
		}
	}
	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
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

// getEnvAsBool gets an environment variable as a boolean with a default value
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

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated environment variable, dropping blanks
func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
