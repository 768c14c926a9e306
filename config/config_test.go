package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 15, cfg.API.TimeoutSec)
	assert.Equal(t, "morning", cfg.Defaults.TimeOfDay)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rootin"), 0o700))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "rootin", "config.json"),
		[]byte(`{"api":{"base_url":"https://skincare.example/api","timeout_sec":5},"defaults":{"time_of_day":"evening"}}`),
		0o600,
	))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://skincare.example/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSec)
	assert.Equal(t, "evening", cfg.Defaults.TimeOfDay)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ROOTIN_API_BASE_URL", "http://10.0.0.2:9000/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:9000/api", cfg.API.BaseURL)
}

func TestLoadRejectsBadTimeOfDay(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ROOTIN_DEFAULTS_TIME_OF_DAY", "noon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time_of_day")
}
