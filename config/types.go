// Package config loads and validates SDK settings from defaults, an optional
// YAML file, and environment variables, in that order of increasing priority.
package config

import (
	"time"
)

// Config holds every setting the SDK consumes. Zero values are filled from
// defaults during Load; a hand-built Config should go through Validate before
// use.
type Config struct {
	API   APIConfig   `koanf:"api"`
	HTTP  HTTPConfig  `koanf:"http"`
	Retry RetryConfig `koanf:"retry"`
	Rate  RateConfig  `koanf:"rate"`
	Log   LogConfig   `koanf:"log"`
}

// APIConfig identifies the remote API and the credentials used against it.
type APIConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	// Token is the bearer token injected on every request. Acquisition and
	// refresh are the caller's concern.
	Token    string `koanf:"token"`
	ProxyURL string `koanf:"proxy_url" validate:"omitempty,url"`
}

// HTTPConfig controls the underlying transport.
type HTTPConfig struct {
	// Timeout bounds a single physical attempt, not the whole retry loop.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// RetryConfig carries the retry policy constants.
type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts" validate:"min=1"`
	BaseDelay   time.Duration `koanf:"base_delay" validate:"min=0"`
	// UnauthorizedRetryDelay is the short delay before the first retry of a
	// 401 response. Challenge/response auth schemes legitimately answer the
	// first round trip with 401 while negotiating a scheme.
	UnauthorizedRetryDelay time.Duration `koanf:"unauthorized_retry_delay" validate:"min=0"`
}

// RateConfig configures the optional client-side throttle.
// RequestsPerSecond <= 0 disables throttling.
type RateConfig struct {
	RequestsPerSecond int `koanf:"requests_per_second"`
	Burst             int `koanf:"burst" validate:"min=0"`
}

// LogConfig controls SDK logging output.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `koanf:"pretty"`
}
