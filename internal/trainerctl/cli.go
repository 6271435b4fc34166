package trainerctl

import (
	"io"
	"os"

	"github.com/okian/trainerdesk/pkg/logger"
)

// SetupLogging initializes the global logger on stderr so command output
// on stdout stays machine readable.
func SetupLogging(format string, verbose bool) error {
	if err := logger.Init(logger.WithFormat(format), logger.WithOutput(os.Stderr)); err != nil {
		return err
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return logger.SetLevelString("warn")
}

// ShowHelp prints usage information.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `trainerctl
==========

Command line access to the personal trainer backend.

Usage:
  trainerctl [options] <command>

Commands:
  customers   print the customer list as JSON
  trainings   print the trainings grid rows as JSON
  stats       print the statistics chart models as JSON
  calendar    print the calendar events as JSON
  reset       restore the backend demo data
  seed        create generated customers and trainings

Options:
  -url string
        Backend API base URL
  -reset-url string
        Reset endpoint (default: <scheme>://<host>/reset of -url)
  -timeout duration
        Per request timeout (default 15s)
  -goal int
        Goal minutes used by stats (default 1000)
  -tz string
        Time zone used by trainings (default "UTC")
  -n int
        Customers created by seed (default 10)
  -trainings int
        Trainings created by seed (default 20)
  -workers int
        Concurrent seed workers (default 4)
  -seed int
        Faker seed; 0 picks a random one
  -log-format string
        text or json (default "text")
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  trainerctl stats
  trainerctl -n 50 -trainings 200 -workers 8 seed
  trainerctl -url http://localhost:8080/api customers
`)
}
