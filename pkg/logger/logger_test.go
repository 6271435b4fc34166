package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns it", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with JSON output", func() {
			var buf bytes.Buffer
			So(Init(WithFormat(FormatJSON), WithOutput(&buf)), ShouldBeNil)
			Get().Info(context.Background(), "hello", String("k", "v"), Int("n", 3))

			Convey("Then each line is a JSON object carrying the fields", func() {
				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				So(line["msg"], ShouldEqual, "hello")
				So(line["k"], ShouldEqual, "v")
				So(line["source"], ShouldNotBeEmpty)
			})
		})

		Convey("When initialized with a file", func() {
			var buf bytes.Buffer
			path := filepath.Join(t.TempDir(), "trainerdesk.log")
			So(Init(WithOutput(&buf), WithFile(path)), ShouldBeNil)
			Get().Warn(context.Background(), "to both", Error(errors.New("boom")))

			Convey("Then the line lands in the file and the primary output", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "to both")
				So(buf.String(), ShouldContainSubstring, "boom")
			})
		})

		Convey("When initialized with an unknown format", func() {
			Convey("Then it fails", func() {
				So(Init(WithFormat("xml")), ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerLevels(t *testing.T) {
	Convey("Given a text logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("WARN"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then info lines are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})

		Convey("When the level string is unknown", func() {
			Convey("Then an error is returned", func() {
				So(SetLevelString("loud"), ShouldNotBeNil)
			})
		})

		Reset(func() { _ = SetLevelString("info") })
	})
}

func TestLoggerNamed(t *testing.T) {
	Convey("Given a named logger", t, func() {
		So(Init(), ShouldBeNil)
		named := Named("backend")

		Convey("Then it logs without panicking", func() {
			So(named, ShouldNotBeNil)
			So(func() { named.Debug(context.Background(), "test message") }, ShouldNotPanic)
		})
	})

	Convey("Given nested names and a request id", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat(FormatJSON), WithOutput(&buf)), ShouldBeNil)
		ctx := ContextWithRequestID(context.Background(), "req-1")
		Named("http").Named("api").Info(ctx, "served")

		Convey("Then both are attached to the line", func() {
			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
			So(line["component"], ShouldEqual, "http.api")
			So(line["request_id"], ShouldEqual, "req-1")
			So(line["source"], ShouldContainSubstring, "logger_test.go")
		})

		Convey("And an empty id leaves the context untouched", func() {
			base := context.Background()
			So(ContextWithRequestID(base, ""), ShouldEqual, base)
			So(RequestIDFrom(base), ShouldBeEmpty)
		})
	})

	Convey("Given a standalone logger", t, func() {
		var buf bytes.Buffer
		l := New(&buf)
		l.Debug(context.Background(), "standalone", Bool("ok", true))

		Convey("Then it writes to its own writer", func() {
			So(strings.Contains(buf.String(), "standalone"), ShouldBeTrue)
			So(func() { Nop().Error(context.Background(), "nothing") }, ShouldNotPanic)
		})
	})
}
