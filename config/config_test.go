package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://api.example.com/v1"

func TestLoadBytesDefaults(t *testing.T) {
	cfg, err := LoadBytes([]byte("api:\n  base_url: " + testBaseURL + "\n"))
	require.NoError(t, err)

	assert.Equal(t, testBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, time.Millisecond, cfg.Retry.UnauthorizedRetryDelay)
	assert.Equal(t, 0, cfg.Rate.RequestsPerSecond)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoadBytesOverrides(t *testing.T) {
	yamlContent := `
api:
  base_url: ` + testBaseURL + `
  token: abc123
  proxy_url: http://proxy.local:3128
http:
  timeout: 15s
retry:
  max_attempts: 3
  base_delay: 2s
  unauthorized_retry_delay: 5ms
rate:
  requests_per_second: 20
  burst: 40
log:
  level: debug
  pretty: true
`
	cfg, err := LoadBytes([]byte(yamlContent))
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.API.Token)
	assert.Equal(t, "http://proxy.local:3128", cfg.API.ProxyURL)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, 5*time.Millisecond, cfg.Retry.UnauthorizedRetryDelay)
	assert.Equal(t, 20, cfg.Rate.RequestsPerSecond)
	assert.Equal(t, 40, cfg.Rate.Burst)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadBytesEnvOverride(t *testing.T) {
	t.Setenv("RESTKIT_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("RESTKIT_API_TOKEN", "env-token")

	cfg, err := LoadBytes([]byte("api:\n  base_url: " + testBaseURL + "\n  token: file-token\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Retry.MaxAttempts)
	assert.Equal(t, "env-token", cfg.API.Token)
}

func TestLoadFileMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("RESTKIT_API_BASE_URL", testBaseURL)

	cfg, err := LoadFile("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:   APIConfig{BaseURL: testBaseURL},
			HTTP:  HTTPConfig{Timeout: time.Minute},
			Retry: RetryConfig{MaxAttempts: 5, BaseDelay: 10 * time.Second, UnauthorizedRetryDelay: time.Millisecond},
			Log:   LogConfig{Level: "info"},
		}
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, Validate(valid()))
	})

	t.Run("rejects missing base URL", func(t *testing.T) {
		cfg := valid()
		cfg.API.BaseURL = ""
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BaseURL")
	})

	t.Run("rejects malformed proxy URL", func(t *testing.T) {
		cfg := valid()
		cfg.API.ProxyURL = "not a url"
		assert.Error(t, Validate(cfg))
	})

	t.Run("rejects zero max attempts", func(t *testing.T) {
		cfg := valid()
		cfg.Retry.MaxAttempts = 0
		assert.Error(t, Validate(cfg))
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Level = "loud"
		assert.Error(t, Validate(cfg))
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		cfg := valid()
		cfg.HTTP.Timeout = 0
		assert.Error(t, Validate(cfg))
	})
}
