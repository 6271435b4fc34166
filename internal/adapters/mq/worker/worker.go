// Package worker runs a fixed number of goroutines over a job queue.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/okian/trainerdesk/pkg/logger"
	"github.com/okian/trainerdesk/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultWorkers = 4
	defaultName    = "pool"
)

// Handler processes a single job.
type Handler[T any] func(ctx context.Context, job T) error

// Source is where workers read jobs from.
type Source[T any] interface {
	Dequeue() <-chan T
}

// Result holds the outcome counts of a pool run.
type Result struct {
	Succeeded int
	Failed    int
}

// Pool manages multiple workers draining one source.
type Pool[T any] struct {
	source  Source[T]
	handler Handler[T]
	name    string
	workers int
	logger  logger.Logger

	succeeded atomic.Int64
	failed    atomic.Int64

	wg      sync.WaitGroup
	started atomic.Bool
}

// NewPool creates a new worker pool over source.
func NewPool[T any](source Source[T], handler Handler[T], opts ...Option) *Pool[T] {
	o := options{name: defaultName, workers: defaultWorkers, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[T]{
		source:  source,
		handler: handler,
		name:    o.name,
		workers: o.workers,
		logger:  o.logger.Named(o.name),
	}
}

// Start launches the workers. A second call is a no-op.
func (p *Pool[T]) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	p.logger.Debug(ctx, "starting workers", logger.Int("workers", p.workers))
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, "worker-"+strconv.Itoa(i))
	}
}

// Wait blocks until the source is drained and every worker has returned.
func (p *Pool[T]) Wait() Result {
	p.wg.Wait()
	return Result{
		Succeeded: int(p.succeeded.Load()),
		Failed:    int(p.failed.Load()),
	}
}

// Shutdown waits for the workers or gives up when ctx ends.
func (p *Pool[T]) Shutdown(ctx context.Context) (Result, error) {
	done := make(chan Result, 1)
	go func() { done <- p.Wait() }()
	select {
	case r := <-done:
		return r, nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "shutdown timed out")
		return Result{}, fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// run drains the source. Once ctx ends the remaining jobs are counted as
// failed without being handled.
func (p *Pool[T]) run(ctx context.Context, name string) {
	defer p.wg.Done()
	for job := range p.source.Dequeue() {
		if ctx.Err() != nil {
			p.failed.Add(1)
			metrics.RecordJobProcessed(p.name, "cancelled")
			continue
		}
		if err := p.handler(ctx, job); err != nil {
			p.failed.Add(1)
			metrics.RecordJobProcessed(p.name, "error")
			p.logger.Debug(ctx, "job failed", logger.String("worker", name), logger.Error(err))
			continue
		}
		p.succeeded.Add(1)
		metrics.RecordJobProcessed(p.name, "ok")
	}
}
