// Package views maps canonical records and aggregated series into the
// literal shapes rendered by chart, calendar and grid surfaces. Nothing here
// aggregates or fetches.
package views

import (
	"fmt"

	"github.com/okian/trainerdesk/internal/domain/stats"
)

// DefaultPalette is the colour cycle shared by bar and donut charts.
var DefaultPalette = []string{"#4B9CD3", "#28a745", "#FFC107", "#FF5733", "#6f42c1", "#17a2b8", "#fd7e14"}

const progressColor = "#28a745"

// ChartPoint is one bar, slice or radial segment.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Chart is a titled series ready to render.
type Chart struct {
	Title  string       `json:"title"`
	Unit   string       `json:"unit,omitempty"`
	Points []ChartPoint `json:"points"`
}

// Statistics is the full statistics page.
type Statistics struct {
	AverageDurations Chart `json:"averageDurations"`
	Counts           Chart `json:"counts"`
	Distribution     Chart `json:"distribution"`
	Progress         Chart `json:"progress"`
	TotalMinutes     int   `json:"totalMinutes"`
	GoalMinutes      int   `json:"goalMinutes"`
}

// ChartAdapter assigns colours by position within a series.
type ChartAdapter struct {
	palette []string
}

// NewChartAdapter uses palette, or DefaultPalette when palette is empty.
func NewChartAdapter(palette []string) *ChartAdapter {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	p := make([]string, len(palette))
	copy(p, palette)
	return &ChartAdapter{palette: p}
}

// Series maps entries to points; entry i gets palette[i % len(palette)].
func (a *ChartAdapter) Series(entries []stats.SeriesEntry) []ChartPoint {
	out := make([]ChartPoint, len(entries))
	for i, e := range entries {
		out[i] = ChartPoint{Name: e.Label, Value: e.Value, Color: a.palette[i%len(a.palette)]}
	}
	return out
}

// Progress builds the single-point radial chart for goal progress.
func (a *ChartAdapter) Progress(s stats.Summary) Chart {
	return Chart{
		Title:  fmt.Sprintf("Goal Progress (%d / %d minutes)", s.TotalMinutes, s.GoalMinutes),
		Unit:   "%",
		Points: []ChartPoint{{Name: "Progress", Value: s.ProgressRounded, Color: progressColor}},
	}
}

// Statistics lays out all four charts of the statistics page.
func (a *ChartAdapter) Statistics(s stats.Summary) Statistics {
	return Statistics{
		AverageDurations: Chart{Title: "Average Durations by Activity", Unit: "Minutes", Points: a.Series(s.MeanDuration)},
		Counts:           Chart{Title: "Training Counts by Activity", Unit: "Count", Points: a.Series(s.Counts)},
		Distribution:     Chart{Title: "Activity Distribution", Points: a.Series(s.Counts)},
		Progress:         a.Progress(s),
		TotalMinutes:     s.TotalMinutes,
		GoalMinutes:      s.GoalMinutes,
	}
}
