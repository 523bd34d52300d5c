package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithEnvBaseURL(t *testing.T) {
	t.Setenv("SEVENMENU_UPSTREAM_URL", "https://api.sevenmenu.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "55", cfg.CountryCode)
	assert.Equal(t, "https://api.sevenmenu.test", cfg.Upstream.BaseURL)
	assert.Equal(t, 15, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, BackendLocal, cfg.Cart.Backend)
}

func TestLoadReadsYAML(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9000"
log_level: debug
upstream:
  base_url: https://api.sevenmenu.test
  timeout_seconds: 5
storage:
  backend: memory
cart:
  backend: redis
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, BackendRedis, cfg.Cart.Backend)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9000"
upstream:
  base_url: https://file.sevenmenu.test
`)
	t.Setenv("SEVENMENU_LISTEN_ADDR", ":7000")
	t.Setenv("SEVENMENU_UPSTREAM_URL", "https://env.sevenmenu.test")
	t.Setenv("SEVENMENU_UPSTREAM_TIMEOUT", "30")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "https://env.sevenmenu.test", cfg.Upstream.BaseURL)
	assert.Equal(t, 30, cfg.Upstream.TimeoutSeconds)
}

func TestLoadRequiresUpstreamURL(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestLoadRejectsUnknownBackends(t *testing.T) {
	t.Setenv("SEVENMENU_UPSTREAM_URL", "https://api.sevenmenu.test")

	t.Run("storage", func(t *testing.T) {
		t.Setenv("SEVENMENU_STORAGE_BACKEND", "s3")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage backend")
	})

	t.Run("cart", func(t *testing.T) {
		t.Setenv("SEVENMENU_CART_BACKEND", "dynamo")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cart backend")
	})
}
