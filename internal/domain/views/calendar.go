package views

import (
	"errors"
	"time"

	"github.com/okian/trainerdesk/internal/domain/model"
)

// CalendarEvent is one training placed on the calendar.
type CalendarEvent struct {
	Title  string         `json:"title"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Source model.Training `json:"source"`
}

// dateLayouts are the timestamp shapes the backend and browsers emit.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ErrInvalidDate is returned by ParseDate for unrecognized timestamps.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a training timestamp. Timestamps without a zone are UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Calendar maps each training to an event ending duration minutes after it
// starts. Trainings with an unparseable date have no place on the calendar
// and are skipped.
func Calendar(trainings []model.Training) []CalendarEvent {
	out := make([]CalendarEvent, 0, len(trainings))
	for _, t := range trainings {
		start, err := ParseDate(t.Date)
		if err != nil {
			continue
		}
		out = append(out, CalendarEvent{
			Title:  t.Activity + " / " + t.Customer.DisplayName(),
			Start:  start,
			End:    start.Add(time.Duration(t.Duration) * time.Minute),
			Source: t,
		})
	}
	return out
}
