package worker

import (
	"github.com/okian/trainerdesk/pkg/logger"
)

// Option applies a configuration option to a Pool.
type Option func(*options)

type options struct {
	name    string
	workers int
	logger  logger.Logger
}

// WithName sets the pool name used in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
