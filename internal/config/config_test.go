package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-detail-bff/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, "http://localhost:8083", cfg.CatalogBaseURL)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, 30*time.Second, cfg.CacheTTL)
		assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
		assert.Equal(t, "/products", cfg.BackLink)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv("PRODUCT_VIEW_HTTP_PORT", "9090")
		t.Setenv("PRODUCT_VIEW_CATALOG_BASE_URL", "http://catalog:8000")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, "http://catalog:8000", cfg.CatalogBaseURL)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := []byte("http_port: \"7070\"\ncache_ttl: 45s\nback_link: /catalog\n")
		require.NoError(t, os.WriteFile(path, content, 0o600))
		t.Setenv("PRODUCT_VIEW_CONFIG_FILE", path)

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.HTTPPort)
		assert.Equal(t, 45*time.Second, cfg.CacheTTL)
		assert.Equal(t, "/catalog", cfg.BackLink)
	})

	t.Run("MissingConfigFile", func(t *testing.T) {
		t.Setenv("PRODUCT_VIEW_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

		_, err := config.Load()
		assert.Error(t, err)
	})
}
