package trainerctl

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/okian/trainerdesk/internal/adapters/mq/queue"
	"github.com/okian/trainerdesk/internal/adapters/mq/worker"
	service "github.com/okian/trainerdesk/internal/app"
	"github.com/okian/trainerdesk/internal/domain/model"
	"github.com/okian/trainerdesk/pkg/logger"
)

// seed generates customers and trainings and posts them with a bounded
// worker pool. Individual failures are counted, not returned.
func seed(ctx context.Context, config *Config, b service.Backend) (*SeedStats, error) {
	stats := &SeedStats{StartTime: time.Now()}

	f := gofakeit.New(config.Seed)
	log := logger.Get()

	customers := generateCustomers(f, config.Customers)
	log.Info(ctx, "submitting customers", logger.Int("count", len(customers)), logger.Int("workers", config.Workers))
	ok, failed := submitAll(ctx, "seed_customers", config.Workers, customers, func(ctx context.Context, in model.CustomerInput) error {
		return b.CreateCustomer(ctx, in)
	})
	stats.CustomersCreated, stats.CustomersFailed = ok, failed

	if config.Trainings > 0 {
		list, err := b.ListCustomers(ctx)
		if err != nil {
			return stats, fmt.Errorf("%w: list customers: %w", ErrSeedFailed, err)
		}
		urls := make([]string, 0, len(list))
		for _, c := range list {
			switch {
			case c.Links.Self.Href != "":
				urls = append(urls, c.Links.Self.Href)
			case c.ID > 0:
				urls = append(urls, b.CustomerURL(strconv.FormatInt(c.ID, 10)))
			}
		}
		if len(urls) == 0 {
			return stats, fmt.Errorf("%w: no customers to attach trainings to", ErrSeedFailed)
		}

		trainings := generateTrainings(f, urls, config.Trainings, time.Now())
		log.Info(ctx, "submitting trainings", logger.Int("count", len(trainings)))
		ok, failed = submitAll(ctx, "seed_trainings", config.Workers, trainings, b.CreateTraining)
		stats.TrainingsCreated, stats.TrainingsFailed = ok, failed
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	return stats, ctx.Err()
}

// submitAll feeds items through a bounded queue to a pool of workers
// running post and returns the success and failure counts.
func submitAll[T any](ctx context.Context, name string, workers int, items []T, post func(context.Context, T) error) (int, int) {
	if workers < 1 {
		workers = 1
	}

	q := queue.NewInMemoryQueue[T](queue.WithCapacity(workers*2), queue.WithName(name))
	pool := worker.NewPool[T](q, post,
		worker.WithName(name),
		worker.WithWorkers(workers),
		worker.WithLogger(logger.Get()))
	pool.Start(ctx)

	skipped := 0
	for i, item := range items {
		if err := q.Enqueue(ctx, item); err != nil {
			skipped = len(items) - i
			break
		}
	}
	_ = q.Close()

	res := pool.Wait()
	return res.Succeeded, res.Failed + skipped
}
