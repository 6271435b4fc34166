package api

import (
	"net/http"
)

// ViewsHandler serves the derived views and the reset action.
type ViewsHandler struct {
	deps Dependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps Dependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

// HandleStatistics handles GET /api/statistics.
func (h *ViewsHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	const op = "api.statistics"
	st, err := h.deps.Statistics(r.Context())
	writeView(w, op, st, err)
}

// HandleCalendar handles GET /api/calendar.
func (h *ViewsHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	const op = "api.calendar"
	events, err := h.deps.Calendar(r.Context())
	writeView(w, op, orEmpty(events), err)
}

// HandleNotices handles GET /api/notices.
func (h *ViewsHandler) HandleNotices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Notices())
}

// HandleReset handles POST /api/reset.
func (h *ViewsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset"
	if err := h.deps.Reset(r.Context()); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "reset"})
}
