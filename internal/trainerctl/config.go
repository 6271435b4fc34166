// Package trainerctl implements the trainerctl command line tool: read the
// backend through the same view pipeline as the server, reset it, or seed
// it with generated customers and trainings.
package trainerctl

import (
	"errors"
	"io"
	"time"
)

// Commands.
const (
	CommandCustomers = "customers"
	CommandTrainings = "trainings"
	CommandStats     = "stats"
	CommandCalendar  = "calendar"
	CommandReset     = "reset"
	CommandSeed      = "seed"
)

// Error constants.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrSeedFailed     = errors.New("seed failed")
)

// Config holds configuration for one trainerctl invocation.
type Config struct {
	BackendURL  string        // Base URL of the REST API
	ResetURL    string        // Reset endpoint; derived from BackendURL when empty
	Timeout     time.Duration // Per request timeout
	GoalMinutes int           // Goal used by the stats command
	TimeZone    *time.Location
	Customers   int   // Customers generated by seed
	Trainings   int   // Trainings generated by seed
	Workers     int   // Concurrent seed workers
	Seed        int64 // Faker seed; 0 picks a random one
	LogFormat   string
	Verbose     bool
	Out         io.Writer // Command output; logs go to stderr
}

// SeedStats holds seed statistics.
type SeedStats struct {
	CustomersCreated int
	CustomersFailed  int
	TrainingsCreated int
	TrainingsFailed  int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
