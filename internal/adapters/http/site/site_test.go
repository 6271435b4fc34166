package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a router with the site registered", t, func() {
		r := chi.NewRouter()
		Register(context.Background(), r)

		Convey("When the root page is requested", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then the page is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "Personal Trainer")
			})
		})

		Convey("When an asset is requested", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))

			Convey("Then it is served from the embedded files", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "Please try refreshing the page.")
			})

			Convey("And it renders the distribution chart and the editors", func() {
				body := w.Body.String()
				So(body, ShouldContainSubstring, "st.distribution")
				So(body, ShouldContainSubstring, `send("POST", "/api/customers", data)`)
				So(body, ShouldContainSubstring, `send("PUT", `+"`/api/trainings/${t.id}`"+`, draft)`)
				So(body, ShouldContainSubstring, "await showNotices()")
			})
		})

		Convey("When the root page is inspected for the editor dialog", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then the dialog is present", func() {
				So(w.Body.String(), ShouldContainSubstring, `<dialog id="editor">`)
			})
		})

		Convey("When a missing asset is requested", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/missing.js", nil))

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given no router", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
