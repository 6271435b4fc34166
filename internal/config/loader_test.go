package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/trainerdesk/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.GoalMinutes, convey.ShouldEqual, 1000)
				convey.So(cfg.BackendURL, convey.ShouldEqual, config.DefaultBackendURL)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TRAINERDESK_ADDR", ":8080")
			_ = os.Setenv("TRAINERDESK_GOAL_MINUTES", "1500")
			_ = os.Setenv("TRAINERDESK_REQUEST_TIMEOUT", "3s")
			_ = os.Setenv("TRAINERDESK_CHART_PALETTE", "#111111, #222222")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.GoalMinutes, convey.ShouldEqual, 1500)
				convey.So(cfg.RequestTimeout, convey.ShouldEqual, 3*time.Second)
				convey.So(cfg.ChartPalette, convey.ShouldResemble, []string{"#111111", "#222222"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
backend_url: "https://backend.example.com/api"
goal_minutes: 600
time_zone: "Europe/Helsinki"
cors_origins:
  - "https://app.example.com"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TRAINERDESK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.BackendURL, convey.ShouldEqual, "https://backend.example.com/api")
				convey.So(cfg.GoalMinutes, convey.ShouldEqual, 600)
				convey.So(cfg.TimeZone, convey.ShouldEqual, "Europe/Helsinki")
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://app.example.com"})
			})

			convey.Convey("Then missing fields keep their defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ResetURL, convey.ShouldEqual, config.DefaultResetURL)
				convey.So(cfg.NoticeCapacity, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\ngoal_minutes: 600\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TRAINERDESK_CONFIG", tmpFile)
			_ = os.Setenv("TRAINERDESK_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.GoalMinutes, convey.ShouldEqual, 600)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TRAINERDESK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a TOML file", func() {
			tmpFile := createTempConfigFileExt(`
addr = ":7070"
goal_minutes = 750
request_timeout = "2s"
cors_origins = ["https://desk.example.com"]
sentry_dsn = "https://key@sentry.example.com/1"
`, ".toml")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TRAINERDESK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be parsed as TOML", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.GoalMinutes, convey.ShouldEqual, 750)
				convey.So(cfg.RequestTimeout, convey.ShouldEqual, 2*time.Second)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://desk.example.com"})
				convey.So(cfg.SentryDSN, convey.ShouldEqual, "https://key@sentry.example.com/1")
				convey.So(cfg.Environment, convey.ShouldEqual, "development")
			})
		})

		convey.Convey("When a TOML file is malformed", func() {
			tmpFile := createTempConfigFileExt(`addr = `, ".toml")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TRAINERDESK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TRAINERDESK_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("TRAINERDESK_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the goal is not positive", func() {
			_ = os.Setenv("TRAINERDESK_GOAL_MINUTES", "-5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"TRAINERDESK_CONFIG",
		"TRAINERDESK_ADDR",
		"TRAINERDESK_GOAL_MINUTES",
		"TRAINERDESK_REQUEST_TIMEOUT",
		"TRAINERDESK_CHART_PALETTE",
	} {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(content string) string {
	return createTempConfigFileExt(content, ".yaml")
}

func createTempConfigFileExt(content, ext string) string {
	tmpFile, err := os.CreateTemp("", "trainerdesk-config-*"+ext)
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
