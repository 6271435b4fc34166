// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/okian/trainerdesk/internal/adapters/backend"
	service "github.com/okian/trainerdesk/internal/app"
	"github.com/okian/trainerdesk/internal/domain/model"
	"github.com/okian/trainerdesk/internal/domain/views"
	"github.com/okian/trainerdesk/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Customers(ctx context.Context) ([]model.Customer, error)
	Trainings(ctx context.Context) ([]model.Training, error)
	Statistics(ctx context.Context) (views.Statistics, error)
	Calendar(ctx context.Context) ([]views.CalendarEvent, error)
	TrainingCustomer(ctx context.Context, id int64) (model.Customer, error)
	ExportCustomersCSV(ctx context.Context, w io.Writer) error
	ExportTrainingsCSV(ctx context.Context, w io.Writer) error
	Notices() []service.Notice

	AddCustomer(ctx context.Context, in model.CustomerInput) error
	UpdateCustomer(ctx context.Context, id int64, patch model.CustomerPatch) error
	DeleteCustomer(ctx context.Context, id int64) error
	AddTraining(ctx context.Context, draft model.TrainingDraft) error
	EditTraining(ctx context.Context, id int64, draft model.TrainingDraft) error
	DeleteTraining(ctx context.Context, id int64) error
	Reset(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	customersHandler *CustomersHandler
	trainingsHandler *TrainingsHandler
	viewsHandler     *ViewsHandler

	corsOrigins []string
	maxBody     int64
	log         logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the browser origins allowed to call the API.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithMaxBodyBytes limits request bodies. Non-positive values are ignored.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		customersHandler: NewCustomersHandler(deps),
		trainingsHandler: NewTrainingsHandler(deps),
		viewsHandler:     NewViewsHandler(deps),
		maxBody:          1 << 20,
		log:              logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds a chi router carrying the shared middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(Recover(s.log))
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Use(NewCORSHandler(s.corsOrigins))
		r.Use(MaxBodySize(s.maxBody))
		r.Use(IdempotencyKey)

		r.Get("/customers", MetricsMiddleware(s.customersHandler.HandleList, "customers_list"))
		r.Post("/customers", MetricsMiddleware(s.customersHandler.HandleCreate, "customers_create"))
		r.Get("/customers/export.csv", MetricsMiddleware(s.customersHandler.HandleExport, "customers_export"))
		r.Put("/customers/{id}", MetricsMiddleware(s.customersHandler.HandleUpdate, "customers_update"))
		r.Delete("/customers/{id}", MetricsMiddleware(s.customersHandler.HandleDelete, "customers_delete"))

		r.Get("/trainings", MetricsMiddleware(s.trainingsHandler.HandleList, "trainings_list"))
		r.Post("/trainings", MetricsMiddleware(s.trainingsHandler.HandleCreate, "trainings_create"))
		r.Get("/trainings/export.csv", MetricsMiddleware(s.trainingsHandler.HandleExport, "trainings_export"))
		r.Put("/trainings/{id}", MetricsMiddleware(s.trainingsHandler.HandleEdit, "trainings_edit"))
		r.Delete("/trainings/{id}", MetricsMiddleware(s.trainingsHandler.HandleDelete, "trainings_delete"))
		r.Get("/trainings/{id}/customer", MetricsMiddleware(s.trainingsHandler.HandleCustomer, "trainings_customer"))

		r.Get("/statistics", MetricsMiddleware(s.viewsHandler.HandleStatistics, "statistics"))
		r.Get("/calendar", MetricsMiddleware(s.viewsHandler.HandleCalendar, "calendar"))
		r.Get("/notices", MetricsMiddleware(s.viewsHandler.HandleNotices, "notices"))
		r.Post("/reset", MetricsMiddleware(s.viewsHandler.HandleReset, "reset"))
	})
}

// Handler returns the router with every route registered.
func (s *Server) Handler() http.Handler {
	r := s.Router()
	s.Register(r)
	return r
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a service error to its HTTP status. Validation errors
// carry their user-facing message unchanged.
func writeFailure(w http.ResponseWriter, op string, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "validation", Message: verr.Message})
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrDuplicate):
		writeError(w, http.StatusConflict, "duplicate", Wrap(op, err))
	case errors.Is(err, service.ErrNotFound), backend.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, backend.ErrTransport),
		errors.Is(err, backend.ErrStatus),
		errors.Is(err, backend.ErrMalformed),
		errors.Is(err, backend.ErrForeignLink),
		errors.Is(err, backend.ErrResetRejected):
		writeError(w, http.StatusBadGateway, "upstream", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
	}
}

// unavailable reports a read that failed upstream. The service has already
// published the view empty and posted a notice, so the view is still served.
func unavailable(err error) bool {
	return errors.Is(err, backend.ErrTransport) ||
		errors.Is(err, backend.ErrStatus) ||
		errors.Is(err, backend.ErrMalformed)
}

// writeView answers a read with v, degrading upstream failures to the view
// the service fell back to.
func writeView(w http.ResponseWriter, op string, v any, err error) {
	if err != nil && !unavailable(err) {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// pathID reads the numeric {id} route parameter.
func pathID(r *http.Request, op string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, WrapKind(op, ErrBadRequest, errors.New("invalid id "+strconv.Quote(raw)))
	}
	return id, nil
}

func decodeBody(r *http.Request, op string, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}
