package service

import (
	"time"

	"github.com/okian/trainerdesk/internal/domain/dedupe"
	"github.com/okian/trainerdesk/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGoalMinutes sets the statistics goal. Non-positive values are ignored.
func WithGoalMinutes(minutes int) Option {
	return func(s *Service) {
		if minutes > 0 {
			s.goalMinutes = minutes
		}
	}
}

// WithChartPalette overrides the chart colours.
func WithChartPalette(palette []string) Option {
	return func(s *Service) {
		s.palette = palette
	}
}

// WithLocation sets the zone grid dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithNoticeCapacity bounds the notice feed.
func WithNoticeCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.noticeCapacity = n
		}
	}
}

// WithDeduper replaces the duplicate-submission guard.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}
