package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/okian/trainerdesk/pkg/logger"
	"github.com/okian/trainerdesk/pkg/metrics"
)

// FetchFunc loads the full contents of a view.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Store holds the published list of one view. The list is replaced
// wholesale on every reload and never edited in place.
//
// Each reload draws a ticket before fetching. When fetches overlap, a
// response whose ticket is older than the one already applied is dropped,
// so the newest request always wins regardless of arrival order.
type Store[T any] struct {
	name  string
	fetch FetchFunc[T]
	log   logger.Logger

	mu      sync.RWMutex
	items   []T
	issued  uint64
	applied uint64
}

// NewStore creates an empty store for view name.
func NewStore[T any](name string, fetch FetchFunc[T], log logger.Logger) *Store[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Store[T]{
		name:  name,
		fetch: fetch,
		log:   log,
		items: []T{},
	}
}

// Reload fetches the view and publishes the result. On failure the view is
// published empty and the error is returned for the caller to report. A
// fetch abandoned by its caller publishes nothing.
func (s *Store[T]) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	ticket := s.issued
	s.mu.Unlock()

	items, err := s.fetch(ctx)
	if err != nil && errors.Is(err, context.Canceled) {
		s.log.Debug(ctx, "view reload abandoned", logger.String("view", s.name), logger.Error(err))
		return err
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
		items = []T{}
		s.log.Error(ctx, "view reload failed", logger.String("view", s.name), logger.Error(err))
	}
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.applied {
		metrics.RecordViewStaleDiscarded(s.name)
		s.log.Debug(ctx, "stale view response discarded",
			logger.String("view", s.name),
			logger.Int64("ticket", int64(ticket)),
			logger.Int64("applied", int64(s.applied)))
		return err
	}
	s.applied = ticket
	s.items = items
	metrics.RecordViewReload(s.name, outcome)
	metrics.UpdateViewItems(s.name, len(items))
	return err
}

// Snapshot returns a copy of the published list.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Loaded reports whether any reload has been applied.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied > 0
}

// Len returns the size of the published list.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
