package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultConfigFile is the YAML file Load looks for in the working directory
	DefaultConfigFile = "restkit.yaml"
	// EnvPrefix namespaces the environment variables read by Load
	EnvPrefix = "RESTKIT_"
)

// Load loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. restkit.yaml in the working directory (if present)
// 3. Default values (lowest priority)
func Load() (*Config, error) {
	return LoadFile(DefaultConfigFile)
}

// LoadFile behaves like Load but reads the given YAML file instead of the
// default one. A missing file is not an error; environment variables and
// defaults still apply.
func LoadFile(path string) (*Config, error) {
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return finish(k)
}

// LoadBytes loads configuration from in-memory YAML content. Environment
// variables still take priority. Intended for embedding and tests.
func LoadBytes(content []byte) (*Config, error) {
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config bytes: %w", err)
	}

	return finish(k)
}

func newKoanf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return k, nil
}

func finish(k *koanf.Koanf) (*Config, error) {
	// Environment variables win over every other source.
	// RESTKIT_RETRY_MAX_ATTEMPTS becomes retry.max_attempts: only the first
	// underscore separates the section from the key.
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return strings.Replace(key, "_", ".", 1), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"api.base_url":  "",
		"api.token":     "",
		"api.proxy_url": "",

		"http.timeout": "60s",

		"retry.max_attempts":             5,
		"retry.base_delay":               "10s",
		"retry.unauthorized_retry_delay": "1ms",

		"rate.requests_per_second": 0,
		"rate.burst":               0,

		"log.level":  "info",
		"log.pretty": false,
	}
}

// Validate checks a Config against its struct constraints.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if ok := errors.As(err, &verrs); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("field %s failed %q validation", first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}
