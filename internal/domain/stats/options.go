// Package stats aggregates trainings into chart-ready series.
package stats

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithGoalMinutes sets the total-duration goal. Non-positive values are
// ignored so the goal is always a usable divisor.
func WithGoalMinutes(minutes int) Option {
	return func(a *Aggregator) {
		if minutes > 0 {
			a.goalMinutes = minutes
		}
	}
}
