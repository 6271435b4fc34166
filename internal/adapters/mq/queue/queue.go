// Package queue provides a bounded in-memory job queue consumed by the
// worker pools.
package queue

import (
	"context"
	"sync"

	"github.com/okian/trainerdesk/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 1024
	defaultName     = "jobs"
)

// Queue provides enqueue and channel-based dequeue semantics.
type Queue[T any] interface {
	// Enqueue blocks until there is room, the queue closes or ctx ends.
	Enqueue(ctx context.Context, job T) error

	// TryEnqueue adds job only when there is room right now.
	TryEnqueue(job T) error

	// Dequeue returns the channel jobs are delivered on. It is closed once
	// the queue is closed and drained.
	Dequeue() <-chan T

	// Len returns the current number of queued jobs.
	Len() int

	// Close stops accepting jobs. Already queued jobs are still delivered.
	Close() error
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue[T any] struct {
	jobs chan T
	name string

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue.
func NewInMemoryQueue[T any](opts ...Option) *InMemoryQueue[T] {
	o := options{capacity: defaultCapacity, name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	metrics.UpdateQueueDepth(o.name, 0)
	return &InMemoryQueue[T]{jobs: make(chan T, o.capacity), name: o.name}
}

// Enqueue adds job, waiting for room.
func (q *InMemoryQueue[T]) Enqueue(ctx context.Context, job T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.jobs <- job:
		metrics.UpdateQueueDepth(q.name, len(q.jobs))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue adds job without waiting.
func (q *InMemoryQueue[T]) TryEnqueue(job T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.jobs <- job:
		metrics.UpdateQueueDepth(q.name, len(q.jobs))
		return nil
	default:
		return ErrFull
	}
}

// Dequeue returns the job channel.
func (q *InMemoryQueue[T]) Dequeue() <-chan T {
	return q.jobs
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue[T]) Len() int {
	n := len(q.jobs)
	metrics.UpdateQueueDepth(q.name, n)
	return n
}

// Close stops the queue; it is safe to call more than once.
func (q *InMemoryQueue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed reports whether Close has been called.
func (q *InMemoryQueue[T]) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
