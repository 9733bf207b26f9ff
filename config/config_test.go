package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.False(t, cfg.Client.DemoMode)
	assert.NotEmpty(t, cfg.Client.StateFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "hackcareer-client", cfg.Observability.ServiceName)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://portal.example.com/")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("APP_ENV", "development")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.com", cfg.API.BaseURL, "trailing slash trimmed")
	assert.True(t, cfg.Client.DemoMode)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate_RejectsBadTimeout(t *testing.T) {
	t.Setenv("API_TIMEOUT_SECONDS", "0")

	_, err := Load()

	assert.Error(t, err)
}

func TestValidate_RejectsEmptyStateFile(t *testing.T) {
	cfg := &Config{
		API:    APIConfig{TimeoutSeconds: 30},
		Client: ClientConfig{StateFile: ""},
	}

	assert.Error(t, cfg.Validate())
}
