package logger

import "io"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 5
)

type options struct {
	format     string
	output     io.Writer
	file       string
	maxSizeMB  int
	maxBackups int
}

// Option configures Init.
type Option func(*options)

// WithFormat selects "text" or "json" output. Empty keeps text.
func WithFormat(format string) Option {
	return func(o *options) {
		if format != "" {
			o.format = format
		}
	}
}

// WithOutput replaces stdout as the primary destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithFile additionally writes to a size-rotated file at path.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
		if o.maxSizeMB == 0 {
			o.maxSizeMB = defaultMaxSizeMB
		}
		if o.maxBackups == 0 {
			o.maxBackups = defaultMaxBackups
		}
	}
}
