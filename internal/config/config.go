// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML or TOML file and TRAINERDESK_* env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"time"
)

// Default upstream locations of the personal trainer REST service.
const (
	DefaultBackendURL = "https://customer-rest-service-frontend-personaltrainer.2.rahtiapp.fi/api"
	DefaultResetURL   = "https://customer-rest-service-frontend-personaltrainer.2.rahtiapp.fi/reset"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// LogFile optionally mirrors logs into a rotated file.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BackendURL is the base of the customers/trainings REST API.
	BackendURL string `koanf:"backend_url"`

	// ResetURL is the fixed endpoint that restores the backend's demo data.
	ResetURL string `koanf:"reset_url"`

	// RequestTimeout bounds each backend call; 0 keeps the transport default.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// GoalMinutes is the total training duration the statistics page tracks.
	GoalMinutes int `koanf:"goal_minutes"`

	// ChartPalette overrides the chart colour cycle.
	ChartPalette []string `koanf:"chart_palette"`

	// TimeZone is used when formatting grid dates, e.g. "Europe/Helsinki".
	TimeZone string `koanf:"time_zone"`

	// CustomerCacheMB sizes the customer lookup cache.
	CustomerCacheMB int `koanf:"customer_cache_mb"`

	// CustomerCacheTTL is how long a resolved customer is reused.
	CustomerCacheTTL time.Duration `koanf:"customer_cache_ttl"`

	// NoticeCapacity bounds the notice feed.
	NoticeCapacity int `koanf:"notice_capacity"`

	// CORSOrigins lists origins allowed to call the API from a browser.
	CORSOrigins []string `koanf:"cors_origins"`

	// SentryDSN enables panic reporting from the error boundary when set.
	SentryDSN string `koanf:"sentry_dsn"`

	// Environment tags reported errors, e.g. "staging".
	Environment string `koanf:"environment"`
}

// New creates a Config holding the defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		BackendURL:       DefaultBackendURL,
		ResetURL:         DefaultResetURL,
		RequestTimeout:   0,
		GoalMinutes:      1000,
		TimeZone:         "UTC",
		CustomerCacheMB:  8,
		CustomerCacheTTL: 5 * time.Minute,
		NoticeCapacity:   20,
		CORSOrigins:      []string{"http://localhost:5173"},
		Environment:      "development",
	}
}

// Location resolves TimeZone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
