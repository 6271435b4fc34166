package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/trainerdesk/internal/config"
	"github.com/okian/trainerdesk/internal/trainerctl"
)

// Default configuration constants.
const (
	defaultTimeout   = 15 * time.Second
	defaultGoal      = 1000
	defaultCustomers = 10
	defaultTrainings = 20
	defaultWorkers   = 4
	commandTimeout   = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", config.DefaultBackendURL, "Backend API base URL")
		resetURL  = flag.String("reset-url", "", "Reset endpoint")
		timeout   = flag.Duration("timeout", defaultTimeout, "Per request timeout")
		goal      = flag.Int("goal", defaultGoal, "Goal minutes used by stats")
		tz        = flag.String("tz", "UTC", "Time zone used by trainings")
		customers = flag.Int("n", defaultCustomers, "Customers created by seed")
		trainings = flag.Int("trainings", defaultTrainings, "Trainings created by seed")
		workers   = flag.Int("workers", defaultWorkers, "Concurrent seed workers")
		seed      = flag.Int64("seed", 0, "Faker seed; 0 picks a random one")
		logFormat = flag.String("log-format", "text", "text or json")
		verbose   = flag.Bool("verbose", false, "Enable debug logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || flag.NArg() != 1 {
		trainerctl.ShowHelp(os.Stdout)
		if !*help {
			os.Exit(2)
		}
		return
	}

	if err := trainerctl.SetupLogging(*logFormat, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		os.Stderr.WriteString("Invalid time zone: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cfg := &trainerctl.Config{
		BackendURL:  *baseURL,
		ResetURL:    *resetURL,
		Timeout:     *timeout,
		GoalMinutes: *goal,
		TimeZone:    loc,
		Customers:   *customers,
		Trainings:   *trainings,
		Workers:     *workers,
		Seed:        *seed,
		LogFormat:   *logFormat,
		Verbose:     *verbose,
		Out:         os.Stdout,
	}

	if err := trainerctl.Run(ctx, cfg, flag.Arg(0)); err != nil {
		os.Stderr.WriteString(flag.Arg(0) + " failed: " + err.Error() + "\n")
		cancel()
		stop()
		os.Exit(1)
	}
}
