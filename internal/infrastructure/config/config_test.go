package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-go/internal/infrastructure/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://rest.fnar.net", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 4, cfg.API.RateLimit.Requests)
	assert.Equal(t, 5, cfg.API.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.API.Retry.BackoffBase)
	assert.Equal(t, time.Hour, cfg.API.CacheMaxAge)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 20, cfg.Planning.RunsPerInstance)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	// Arrange
	t.Setenv("PRUN_API_BASE_URL", "https://fio.example.test")
	t.Setenv("PRUN_PLANNING_RUNS_PER_INSTANCE", "5")

	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://fio.example.test", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.Planning.RunsPerInstance)
}

func TestLoadConfig_FIOAPIKeyWithoutPrefix(t *testing.T) {
	// Arrange - the key is accepted without the PRUN_ prefix
	t.Setenv("FIO_API_KEY", "secret-key")

	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.API.Key)
}

func TestValidateConfig_RejectsBadDatabaseType(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Type = "mongodb"

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	assert.Error(t, err)
}
