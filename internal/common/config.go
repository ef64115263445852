// Package common provides shared utilities for StockScope
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for StockScope
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Tradier      ProviderConfig `toml:"tradier"`
	Finnhub      ProviderConfig `toml:"finnhub"`
	AlphaVantage ProviderConfig `toml:"alphavantage"`
	FMP          ProviderConfig `toml:"fmp"`
	NewsAPI      ProviderConfig `toml:"newsapi"`
	Claude       ClaudeConfig   `toml:"claude"`
}

// ProviderConfig holds configuration for a keyed REST data provider.
// An empty APIKey is a valid configuration: the provider is skipped.
type ProviderConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ProviderConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ClaudeConfig holds Anthropic API configuration for the narrative service
type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ClaudeConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Clients: ClientsConfig{
			Tradier: ProviderConfig{
				BaseURL:   "https://api.tradier.com/v1",
				RateLimit: 5,
				Timeout:   "10s",
			},
			Finnhub: ProviderConfig{
				BaseURL:   "https://finnhub.io/api/v1",
				RateLimit: 10,
				Timeout:   "10s",
			},
			AlphaVantage: ProviderConfig{
				BaseURL:   "https://www.alphavantage.co",
				RateLimit: 5,
				Timeout:   "10s",
			},
			FMP: ProviderConfig{
				BaseURL:   "https://financialmodelingprep.com/api/v3",
				RateLimit: 5,
				Timeout:   "10s",
			},
			NewsAPI: ProviderConfig{
				BaseURL:   "https://newsapi.org/v2",
				RateLimit: 5,
				Timeout:   "10s",
			},
			Claude: ClaudeConfig{
				Model:     "claude-sonnet-4-20250514",
				MaxTokens: 4000,
				Timeout:   "60s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from TOML files with environment overrides.
// A local .env file is loaded first so plain env-style deployments work
// without a TOML file at all.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKSCOPE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKSCOPE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKSCOPE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	config.Clients.Tradier.APIKey = resolveKey(config.Clients.Tradier.APIKey, "TRADIER_KEY", "STOCKSCOPE_TRADIER_API_KEY")
	config.Clients.Finnhub.APIKey = resolveKey(config.Clients.Finnhub.APIKey, "FINNHUB_KEY", "STOCKSCOPE_FINNHUB_API_KEY")
	config.Clients.AlphaVantage.APIKey = resolveKey(config.Clients.AlphaVantage.APIKey, "ALPHA_VANTAGE_KEY", "STOCKSCOPE_ALPHA_VANTAGE_API_KEY")
	config.Clients.FMP.APIKey = resolveKey(config.Clients.FMP.APIKey, "FMP_KEY", "STOCKSCOPE_FMP_API_KEY")
	config.Clients.NewsAPI.APIKey = resolveKey(config.Clients.NewsAPI.APIKey, "NEWSAPI_KEY", "STOCKSCOPE_NEWSAPI_API_KEY")
	config.Clients.Claude.APIKey = resolveKey(config.Clients.Claude.APIKey, "ANTHROPIC_API_KEY", "STOCKSCOPE_ANTHROPIC_API_KEY")

	if model := os.Getenv("STOCKSCOPE_CLAUDE_MODEL"); model != "" {
		config.Clients.Claude.Model = model
	}
}

// resolveKey returns the first non-empty environment value from names,
// falling back to the config-file value.
func resolveKey(fallback string, names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return fallback
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
