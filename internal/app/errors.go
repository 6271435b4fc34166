package service

import (
	"context"
	"errors"
)

// Sentinel errors returned by the service.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate submission")
)

type idempotencyKey struct{}

// WithIdempotencyKey attaches a submission key to ctx. Mutations run under
// the same key are performed at most once.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// IdempotencyKey returns the submission key carried by ctx, if any.
func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKey{}).(string)
	return key
}
