package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads yaml over defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
api_key: secret
start_date: "2024-01-01"
domain: acme
campaign_ids:
  - "1"
  - "2"
debug: true
reliability:
  retry_attempts: 3
  retry_delay: 2s
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, "acme", cfg.Domain)
		assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
		assert.Equal(t, []string{"1", "2"}, cfg.CampaignIDs)
		require.NotNil(t, cfg.Debug)
		assert.True(t, *cfg.Debug)
		assert.Equal(t, 3, cfg.Reliability.RetryAttempts)
		assert.Equal(t, 2*time.Second, cfg.Reliability.RetryDelay)
	})

	t.Run("substitutes environment variables", func(t *testing.T) {
		t.Setenv("LEADBYTE_API_KEY", "from-env")
		path := writeConfigFile(t, `
api_key: ${LEADBYTE_API_KEY}
start_date: "2024-01-01"
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.APIKey)
	})

	t.Run("unset flags stay nil", func(t *testing.T) {
		path := writeConfigFile(t, `
api_key: secret
start_date: "2024-01-01"
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Nil(t, cfg.Debug)
		assert.Nil(t, cfg.ShowSupplier)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/does/not/exist.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfigFile(t, "api_key: [unclosed")
		_, err := Load(path)
		assert.Error(t, err)
	})
}
