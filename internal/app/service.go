// Package service implements the customers/trainings workflows behind the
// HTTP API and the command line tool.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/okian/trainerdesk/internal/domain/dedupe"
	"github.com/okian/trainerdesk/internal/domain/link"
	"github.com/okian/trainerdesk/internal/domain/model"
	"github.com/okian/trainerdesk/internal/domain/stats"
	"github.com/okian/trainerdesk/internal/domain/views"
	"github.com/okian/trainerdesk/pkg/logger"
	"github.com/okian/trainerdesk/pkg/metrics"
)

// Backend is the remote API the service reads from and mutates.
type Backend interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	ListTrainings(ctx context.Context) ([]model.Training, error)
	GetCustomer(ctx context.Context, href string) (model.Customer, error)
	CreateCustomer(ctx context.Context, in model.CustomerInput) error
	UpdateCustomer(ctx context.Context, selfHref string, in model.CustomerInput) error
	DeleteCustomer(ctx context.Context, selfHref string) error
	CreateTraining(ctx context.Context, nt model.NewTraining) error
	DeleteTraining(ctx context.Context, id int64) error
	CustomerURL(id string) string
	Reset(ctx context.Context) error
}

// View names used in logs and metrics.
const (
	ViewCustomers = "customers"
	ViewTrainings = "trainings"
)

// Date layout sent to the backend for new trainings.
const backendDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Notice texts.
const (
	msgCustomerAdded      = "Customer added successfully"
	msgCustomerEdited     = "Customer edited successfully"
	msgCustomerDeleted    = "Customer deleted successfully"
	msgTrainingAdded      = "Training added successfully"
	msgTrainingEdited     = "Training edited successfully"
	msgTrainingDeleted    = "Training deleted successfully"
	msgResetDone          = "DB reset done"
	msgAddCustomerFailed  = "Failed to add customer."
	msgEditCustomerFailed = "Failed to edit customer."
	msgDelCustomerFailed  = "Failed to delete customer."
	msgAddTrainingFailed  = "Failed to add training."
	msgEditTrainingFailed = "Failed to update training. Please try again."
	msgDelTrainingFailed  = "Failed to delete training."
	msgResetFailed        = "Failed to reset data."
	msgLoadCustomers      = "Failed to load customers."
	msgLoadTrainings      = "Failed to load trainings."
)

// Service coordinates the backend, the view stores and the view adapters.
type Service struct {
	backend   Backend
	customers *Store[model.Customer]
	trainings *Store[model.Training]
	notices   *NoticeFeed
	deduper   dedupe.Deduper
	agg       *stats.Aggregator
	charts    *views.ChartAdapter

	// Configuration
	goalMinutes    int
	palette        []string
	location       *time.Location
	noticeCapacity int

	startedAt time.Time
	logger    logger.Logger
}

// New constructs a Service over b.
func New(b Backend, opts ...Option) *Service {
	s := &Service{
		backend:        b,
		goalMinutes:    1000,
		location:       time.UTC,
		noticeCapacity: 20,
		startedAt:      time.Now(),
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper()
	}
	s.notices = NewNoticeFeed(s.noticeCapacity)
	s.agg = stats.NewAggregator(stats.WithGoalMinutes(s.goalMinutes))
	s.charts = views.NewChartAdapter(s.palette)
	s.customers = NewStore(ViewCustomers, b.ListCustomers, s.logger.Named(ViewCustomers))
	s.trainings = NewStore(ViewTrainings, b.ListTrainings, s.logger.Named(ViewTrainings))
	return s
}

// Start loads both views once. Load failures are logged, not returned: the
// backend may come up later and every read reloads anyway.
func (s *Service) Start(ctx context.Context) {
	s.logger.Info(ctx, "loading views...")
	cerr := s.customers.Reload(ctx)
	terr := s.trainings.Reload(ctx)
	s.logger.Info(ctx, "views loaded",
		logger.Int("customers", s.customers.Len()),
		logger.Int("trainings", s.trainings.Len()),
		logger.Bool("customersOK", cerr == nil),
		logger.Bool("trainingsOK", terr == nil))
}

// Customers reloads and returns the customers view.
func (s *Service) Customers(ctx context.Context) ([]model.Customer, error) {
	if err := s.customers.Reload(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			s.notices.Post(NoticeError, msgLoadCustomers)
		}
		return s.customers.Snapshot(), err
	}
	return s.customers.Snapshot(), nil
}

// Trainings reloads and returns the trainings view.
func (s *Service) Trainings(ctx context.Context) ([]model.Training, error) {
	if err := s.trainings.Reload(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			s.notices.Post(NoticeError, msgLoadTrainings)
		}
		return s.trainings.Snapshot(), err
	}
	return s.trainings.Snapshot(), nil
}

// TrainingRows returns the trainings grid.
func (s *Service) TrainingRows(ctx context.Context) ([]views.TrainingRow, error) {
	list, err := s.Trainings(ctx)
	return views.TrainingRows(list, s.location), err
}

// Statistics returns the chart models of the statistics page.
func (s *Service) Statistics(ctx context.Context) (views.Statistics, error) {
	list, err := s.Trainings(ctx)
	summary := s.agg.Summarize(list)
	metrics.UpdateGoalProgress(summary.TotalMinutes, summary.Progress)
	return s.charts.Statistics(summary), err
}

// Calendar returns the trainings as calendar events.
func (s *Service) Calendar(ctx context.Context) ([]views.CalendarEvent, error) {
	list, err := s.Trainings(ctx)
	return views.Calendar(list), err
}

// ExportTrainingsCSV writes the trainings grid as CSV.
func (s *Service) ExportTrainingsCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.TrainingRows(ctx)
	if err != nil {
		return err
	}
	return views.WriteTrainingsCSV(w, rows)
}

// ExportCustomersCSV writes the customers grid as CSV.
func (s *Service) ExportCustomersCSV(ctx context.Context, w io.Writer) error {
	list, err := s.Customers(ctx)
	if err != nil {
		return err
	}
	return views.WriteCustomersCSV(w, list)
}

// Notices returns the recent notices.
func (s *Service) Notices() []Notice {
	return s.notices.List()
}

// TrainingCustomer resolves the customer link of training id, as the edit
// form does to preselect the customer.
func (s *Service) TrainingCustomer(ctx context.Context, id int64) (model.Customer, error) {
	t, err := s.findTraining(ctx, id)
	if err != nil {
		return model.Customer{}, err
	}
	href := link.ResolveLink(t.Links.Customer)
	if href == "" {
		return model.Customer{}, fmt.Errorf("%w: training %d has no customer link", ErrNotFound, id)
	}
	return s.backend.GetCustomer(ctx, href)
}

// AddCustomer creates a customer.
func (s *Service) AddCustomer(ctx context.Context, in model.CustomerInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, "add_customer", msgCustomerAdded, msgAddCustomerFailed,
		func(ctx context.Context) error { return s.backend.CreateCustomer(ctx, in) },
		s.customers)
}

// UpdateCustomer applies patch to customer id and replaces it on the backend.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, patch model.CustomerPatch) error {
	if patch.IsEmpty() {
		return model.ErrInvalidField("customer", "Nothing to update.")
	}
	c, err := s.findCustomer(ctx, id)
	if err != nil {
		return err
	}
	in := model.InputOf(patch.Apply(c))
	if err := in.Validate(); err != nil {
		return err
	}
	self := s.selfLink(c)
	return s.mutate(ctx, "update_customer", msgCustomerEdited, msgEditCustomerFailed,
		func(ctx context.Context) error { return s.backend.UpdateCustomer(ctx, self, in) },
		s.customers, s.trainings)
}

// DeleteCustomer removes customer id.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	c, err := s.findCustomer(ctx, id)
	if err != nil {
		return err
	}
	self := s.selfLink(c)
	return s.mutate(ctx, "delete_customer", msgCustomerDeleted, msgDelCustomerFailed,
		func(ctx context.Context) error { return s.backend.DeleteCustomer(ctx, self) },
		s.customers, s.trainings)
}

// AddTraining creates a training from draft.
func (s *Service) AddTraining(ctx context.Context, draft model.TrainingDraft) error {
	nt, err := s.prepareTraining(draft)
	if err != nil {
		return err
	}
	return s.mutate(ctx, "add_training", msgTrainingAdded, msgAddTrainingFailed,
		func(ctx context.Context) error { return s.backend.CreateTraining(ctx, nt) },
		s.trainings)
}

// EditTraining replaces training id with draft. The backend cannot update a
// training, so the old one is deleted and a new one created; the new
// training gets a new id.
func (s *Service) EditTraining(ctx context.Context, id int64, draft model.TrainingDraft) error {
	nt, err := s.prepareTraining(draft)
	if err != nil {
		return err
	}
	return s.mutate(ctx, "edit_training", msgTrainingEdited, msgEditTrainingFailed,
		func(ctx context.Context) error {
			if err := s.backend.DeleteTraining(ctx, id); err != nil {
				return err
			}
			if err := s.backend.CreateTraining(ctx, nt); err != nil {
				return fmt.Errorf("training %d deleted but not recreated: %w", id, err)
			}
			return nil
		},
		s.trainings)
}

// DeleteTraining removes training id.
func (s *Service) DeleteTraining(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete_training", msgTrainingDeleted, msgDelTrainingFailed,
		func(ctx context.Context) error { return s.backend.DeleteTraining(ctx, id) },
		s.trainings)
}

// Reset restores the backend demo data.
func (s *Service) Reset(ctx context.Context) error {
	return s.mutate(ctx, "reset", msgResetDone, msgResetFailed, s.backend.Reset,
		s.customers, s.trainings)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"customers":       s.customers.Len(),
		"customersLoaded": s.customers.Loaded(),
		"trainings":       s.trainings.Len(),
		"trainingsLoaded": s.trainings.Loaded(),
		"notices":         len(s.notices.List()),
		"pendingKeys":     s.deduper.Size(),
		"goalMinutes":     s.goalMinutes,
		"uptimeSeconds":   int64(time.Since(s.startedAt).Seconds()),
	}
}

type reloader interface {
	Reload(ctx context.Context) error
}

// mutate runs fn once per idempotency key, posts the outcome notice and
// then reloads the affected views. Reload failures are logged by the
// stores and do not fail the mutation.
func (s *Service) mutate(ctx context.Context, kind, okMsg, failMsg string, fn func(context.Context) error, affected ...reloader) error {
	key := IdempotencyKey(ctx)
	if key != "" {
		key = kind + ":" + key
		if s.deduper.SeenAndRecord(ctx, key) {
			metrics.RecordMutation(kind, "duplicate")
			s.logger.Warn(ctx, "duplicate submission refused", logger.String("kind", kind))
			return ErrDuplicate
		}
	}

	if err := fn(ctx); err != nil {
		if key != "" {
			s.deduper.Unrecord(ctx, key)
		}
		metrics.RecordMutation(kind, "error")
		s.notices.Post(NoticeError, failMsg)
		s.logger.Error(ctx, "mutation failed", logger.String("kind", kind), logger.Error(err))
		return err
	}

	metrics.RecordMutation(kind, "success")
	s.notices.Post(NoticeSuccess, okMsg)
	s.logger.Info(ctx, "mutation applied", logger.String("kind", kind))
	for _, v := range affected {
		_ = v.Reload(ctx)
	}
	return nil
}

func (s *Service) prepareTraining(draft model.TrainingDraft) (model.NewTraining, error) {
	if err := draft.Validate(); err != nil {
		return model.NewTraining{}, err
	}
	customerID := link.Resolve(draft.Customer)
	if customerID == "" {
		return model.NewTraining{}, model.ErrInvalidField("customer", "Invalid customer selected.")
	}
	date, err := views.ParseDate(draft.Date)
	if err != nil {
		return model.NewTraining{}, model.ErrInvalidField("date", "Invalid date.")
	}
	return model.NewTraining{
		Date:     date.UTC().Format(backendDateLayout),
		Duration: draft.Duration,
		Activity: draft.Activity,
		Customer: s.backend.CustomerURL(customerID),
	}, nil
}

// findCustomer looks id up in the published view, reloading once when it
// is absent.
func (s *Service) findCustomer(ctx context.Context, id int64) (model.Customer, error) {
	lookup := func() (model.Customer, bool) {
		for _, c := range s.customers.Snapshot() {
			if c.ID == id {
				return c, true
			}
		}
		return model.Customer{}, false
	}
	if c, ok := lookup(); ok {
		return c, nil
	}
	if err := s.customers.Reload(ctx); err != nil {
		return model.Customer{}, err
	}
	if c, ok := lookup(); ok {
		return c, nil
	}
	return model.Customer{}, fmt.Errorf("%w: customer %d", ErrNotFound, id)
}

func (s *Service) findTraining(ctx context.Context, id int64) (model.Training, error) {
	lookup := func() (model.Training, bool) {
		for _, t := range s.trainings.Snapshot() {
			if t.ID == id {
				return t, true
			}
		}
		return model.Training{}, false
	}
	if t, ok := lookup(); ok {
		return t, nil
	}
	if err := s.trainings.Reload(ctx); err != nil {
		return model.Training{}, err
	}
	if t, ok := lookup(); ok {
		return t, nil
	}
	return model.Training{}, fmt.Errorf("%w: training %d", ErrNotFound, id)
}

func (s *Service) selfLink(c model.Customer) string {
	if c.Links.Self.Href != "" {
		return c.Links.Self.Href
	}
	return s.backend.CustomerURL(strconv.FormatInt(c.ID, 10))
}

// IsValidation reports whether err is a user input problem.
func IsValidation(err error) bool {
	return errors.Is(err, model.ErrValidation)
}
