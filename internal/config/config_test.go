package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/trainerdesk/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.BackendURL, convey.ShouldEqual, config.DefaultBackendURL)
			convey.So(cfg.ResetURL, convey.ShouldEqual, config.DefaultResetURL)
			convey.So(cfg.RequestTimeout, convey.ShouldEqual, 0)
			convey.So(cfg.GoalMinutes, convey.ShouldEqual, 1000)
			convey.So(cfg.NoticeCapacity, convey.ShouldEqual, 20)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the location falls back to UTC", func() {
			cfg.TimeZone = "Not/AZone"
			convey.So(cfg.Location(), convey.ShouldEqual, time.UTC)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a config with several problems", t, func() {
		cfg := config.New(context.Background())
		cfg.Addr = ""
		cfg.BackendURL = "/relative"
		cfg.GoalMinutes = 0

		err := cfg.Validate()

		convey.Convey("Then every problem is reported together", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			convey.So(err.Error(), convey.ShouldContainSubstring, "backend_url must be an absolute URL")
			convey.So(err.Error(), convey.ShouldContainSubstring, "goal_minutes must be positive")
		})
	})
}
