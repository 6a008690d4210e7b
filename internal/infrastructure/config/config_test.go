package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so a developer's local
// config.toml cannot leak into assertions
func chdir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "foodcheq-storefront", cfg.App.Name)
	assert.Equal(t, "http://localhost:4000/api", cfg.API.BaseURL)
	assert.Equal(t, "http://localhost:4000", cfg.API.ServerBase)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, ".foodcheq", cfg.Storage.Dir)
	assert.Equal(t, 30*time.Minute, cfg.FX.CacheTTL)
	assert.Equal(t, float64(1600), cfg.FX.FallbackRate)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	chdir(t)

	toml := `
[api]
base_url = "https://shop.example/api"

[storage]
backend = "memory"

[fx]
fallback_rate = 1700
`
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(wd, "config.toml"), []byte(toml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example/api", cfg.API.BaseURL)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, float64(1700), cfg.FX.FallbackRate)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep their defaults")
}

func TestEnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("FOODCHEQ_API_BASE_URL", "https://env.example/api")
	t.Setenv("FOODCHEQ_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/api", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}
