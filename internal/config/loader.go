package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/multierr"
)

// Environment variable names.
const (
	EnvPrefix = "TRAINERDESK_"
	EnvFile   = "TRAINERDESK_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML, or TOML for a .toml path) if TRAINERDESK_CONFIG is set
//  3. env (prefix TRAINERDESK_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, wrapKind(ErrLoadConfig, err)
		}
	}

	// Map env keys like TRAINERDESK_GOAL_MINUTES -> goal_minutes (flat keys).
	// List keys take comma separated values.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if _, ok := listKeys[key]; ok {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, wrapKind(ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, wrapKind(ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlParser{}
	}
	return yaml.Parser()
}

// tomlParser adapts BurntSushi/toml to koanf.Parser.
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if _, err := toml.Decode(string(b), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var listKeys = map[string]struct{}{
	"chart_palette": {},
	"cors_origins":  {},
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs error
	if c.Addr == "" {
		errs = multierr.Append(errs, errors.New("addr must not be empty"))
	}
	if err := absoluteURL("backend_url", c.BackendURL); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := absoluteURL("reset_url", c.ResetURL); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.GoalMinutes <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("goal_minutes must be positive, got %d", c.GoalMinutes))
	}
	if c.RequestTimeout < 0 {
		errs = multierr.Append(errs, errors.New("request_timeout must not be negative"))
	}
	if c.CustomerCacheTTL < time.Second {
		errs = multierr.Append(errs, errors.New("customer_cache_ttl must be at least 1s"))
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("time_zone: %w", err))
	}
	if errs != nil {
		return wrapKind(ErrInvalidConfig, errs)
	}
	return nil
}

func absoluteURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
	}
	return nil
}
