package trainerctl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okian/trainerdesk/internal/adapters/backend"
	service "github.com/okian/trainerdesk/internal/app"
	"github.com/okian/trainerdesk/pkg/logger"
)

// Run executes command against the backend named in config.
func Run(ctx context.Context, config *Config, command string) error {
	opts := []backend.Option{
		backend.WithTimeout(config.Timeout),
		backend.WithLogger(logger.Named("backend")),
	}
	if config.ResetURL != "" {
		opts = append(opts, backend.WithResetURL(config.ResetURL))
	}
	client, err := backend.New(config.BackendURL, opts...)
	if err != nil {
		return err
	}
	return Execute(ctx, config, client, command)
}

// Execute runs command against b and writes its JSON result to config.Out.
func Execute(ctx context.Context, config *Config, b service.Backend, command string) error {
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	loc := config.TimeZone
	if loc == nil {
		loc = time.UTC
	}

	svc := service.New(b,
		service.WithLogger(logger.Named("service")),
		service.WithGoalMinutes(config.GoalMinutes),
		service.WithLocation(loc),
	)

	logger.Get().Debug(ctx, "running command",
		logger.String("command", command),
		logger.String("backend", config.BackendURL))

	var result any
	var err error
	switch command {
	case CommandCustomers:
		result, err = svc.Customers(ctx)
	case CommandTrainings:
		result, err = svc.TrainingRows(ctx)
	case CommandStats:
		result, err = svc.Statistics(ctx)
	case CommandCalendar:
		result, err = svc.Calendar(ctx)
	case CommandReset:
		if err = svc.Reset(ctx); err == nil {
			result = map[string]string{"status": backend.ResetConfirmation}
		}
	case CommandSeed:
		var stats *SeedStats
		stats, err = seed(ctx, config, b)
		if stats != nil {
			displaySeedStats(ctx, stats)
			result = seedSummary(stats)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

type seedResult struct {
	CustomersCreated int    `json:"customersCreated"`
	CustomersFailed  int    `json:"customersFailed"`
	TrainingsCreated int    `json:"trainingsCreated"`
	TrainingsFailed  int    `json:"trainingsFailed"`
	Duration         string `json:"duration"`
}

func seedSummary(s *SeedStats) seedResult {
	return seedResult{
		CustomersCreated: s.CustomersCreated,
		CustomersFailed:  s.CustomersFailed,
		TrainingsCreated: s.TrainingsCreated,
		TrainingsFailed:  s.TrainingsFailed,
		Duration:         s.Duration.String(),
	}
}

func displaySeedStats(ctx context.Context, stats *SeedStats) {
	var perSecond float64
	total := stats.CustomersCreated + stats.TrainingsCreated
	if stats.Duration > 0 {
		perSecond = float64(total) / stats.Duration.Seconds()
	}
	logger.Get().Info(ctx, "seed statistics",
		logger.Int("customersCreated", stats.CustomersCreated),
		logger.Int("customersFailed", stats.CustomersFailed),
		logger.Int("trainingsCreated", stats.TrainingsCreated),
		logger.Int("trainingsFailed", stats.TrainingsFailed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("recordsPerSecond", perSecond))
}
