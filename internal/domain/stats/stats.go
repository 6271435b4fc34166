package stats

import (
	"math"

	"github.com/okian/trainerdesk/internal/domain/model"
)

const (
	defaultGoalMinutes = 1000
	fullProgress       = 100.0
)

// SeriesEntry is the uniform shape every chart adapter consumes.
type SeriesEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Summary holds every derived view over one list of trainings.
type Summary struct {
	MeanDuration    []SeriesEntry `json:"meanDuration"`
	Counts          []SeriesEntry `json:"counts"`
	TotalMinutes    int           `json:"totalMinutes"`
	GoalMinutes     int           `json:"goalMinutes"`
	Progress        float64       `json:"progress"`
	ProgressRounded float64       `json:"progressRounded"`
}

// Aggregator computes statistics against a fixed duration goal.
type Aggregator struct {
	goalMinutes int
}

// NewAggregator constructs an Aggregator with a 1000 minute goal unless overridden.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{goalMinutes: defaultGoalMinutes}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GoalMinutes returns the configured goal.
func (a *Aggregator) GoalMinutes() int { return a.goalMinutes }

// group holds one activity's running totals.
type group struct {
	label string
	count int
	total int
}

// groupByActivity groups by exact activity label, keeping first-seen order.
func groupByActivity(trainings []model.Training) []*group {
	index := make(map[string]*group)
	order := make([]*group, 0)
	for _, t := range trainings {
		g, ok := index[t.Activity]
		if !ok {
			g = &group{label: t.Activity}
			index[t.Activity] = g
			order = append(order, g)
		}
		g.count++
		g.total += t.Duration
	}
	return order
}

// MeanDurationByActivity returns the arithmetic mean duration per activity.
func MeanDurationByActivity(trainings []model.Training) []SeriesEntry {
	groups := groupByActivity(trainings)
	out := make([]SeriesEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, SeriesEntry{Label: g.label, Value: float64(g.total) / float64(g.count)})
	}
	return out
}

// CountByActivity returns the number of trainings per activity.
func CountByActivity(trainings []model.Training) []SeriesEntry {
	groups := groupByActivity(trainings)
	out := make([]SeriesEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, SeriesEntry{Label: g.label, Value: float64(g.count)})
	}
	return out
}

// TotalDuration sums durations across all trainings.
func TotalDuration(trainings []model.Training) int {
	total := 0
	for _, t := range trainings {
		total += t.Duration
	}
	return total
}

// Progress returns 100*total/goal clamped to [0, 100].
func (a *Aggregator) Progress(totalMinutes int) float64 {
	switch {
	case totalMinutes <= 0:
		return 0
	case totalMinutes >= a.goalMinutes:
		return fullProgress
	}
	return float64(totalMinutes) / float64(a.goalMinutes) * fullProgress
}

// Summarize recomputes every series from scratch.
func (a *Aggregator) Summarize(trainings []model.Training) Summary {
	total := TotalDuration(trainings)
	progress := a.Progress(total)
	return Summary{
		MeanDuration:    MeanDurationByActivity(trainings),
		Counts:          CountByActivity(trainings),
		TotalMinutes:    total,
		GoalMinutes:     a.goalMinutes,
		Progress:        progress,
		ProgressRounded: math.Round(progress*10) / 10,
	}
}
