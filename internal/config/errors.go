package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// wrapKind tags err with a sentinel kind while keeping the cause.
func wrapKind(kind, err error) error {
	return fmt.Errorf("%w: %w", kind, err)
}
