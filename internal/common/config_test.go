package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 5000, config.Server.Port)
	assert.Equal(t, "https://finnhub.io/api/v1", config.Clients.Finnhub.BaseURL)
	assert.Empty(t, config.Clients.Tradier.APIKey)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfigFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockscope.toml")

	content := `
environment = "production"

[server]
port = 8080

[clients.finnhub]
api_key = "file-key"
rate_limit = 20

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "file-key", config.Clients.Finnhub.APIKey)
	assert.Equal(t, 20, config.Clients.Finnhub.RateLimit)
	assert.Equal(t, "debug", config.Logging.Level)

	// Defaults survive for sections the file does not mention.
	assert.Equal(t, "https://api.tradier.com/v1", config.Clients.Tradier.BaseURL)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, config.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STOCKSCOPE_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("FINNHUB_KEY", "env-key")
	t.Setenv("ANTHROPIC_API_KEY", "claude-key")
	t.Setenv("STOCKSCOPE_LOG_LEVEL", "warn")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "env-key", config.Clients.Finnhub.APIKey)
	assert.Equal(t, "claude-key", config.Clients.Claude.APIKey)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockscope.toml")
	require.NoError(t, os.WriteFile(path, []byte("[clients.tradier]\napi_key = \"file-key\"\n"), 0o644))

	t.Setenv("TRADIER_KEY", "env-key")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", config.Clients.Tradier.APIKey)
}

func TestProviderTimeout(t *testing.T) {
	cfg := ProviderConfig{Timeout: "30s"}
	assert.Equal(t, "30s", cfg.GetTimeout().String())

	cfg = ProviderConfig{Timeout: "bogus"}
	assert.Equal(t, "10s", cfg.GetTimeout().String())

	claude := ClaudeConfig{}
	assert.Equal(t, "1m0s", claude.GetTimeout().String())
}
