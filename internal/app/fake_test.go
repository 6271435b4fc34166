package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/trainerdesk/internal/domain/model"
)

var errBackendDown = errors.New("backend down")

const fakeBase = "https://backend.test/api"

// fakeBackend records calls in order and serves canned lists.
type fakeBackend struct {
	mu sync.Mutex

	customers []model.Customer
	trainings []model.Training
	resolved  model.Customer

	listErr   error
	createErr error
	deleteErr error
	resetErr  error

	calls            []string
	createdTrainings []model.NewTraining
	createdCustomers []model.CustomerInput
	updatedCustomers map[string]model.CustomerInput
	deletedTrainings []int64
	deletedCustomers []string
	resolvedHrefs    []string
	listCustomerHits int
	listTrainingHits int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{updatedCustomers: map[string]model.CustomerInput{}}
}

func (f *fakeBackend) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) ListCustomers(context.Context) ([]model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCustomerHits++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Customer(nil), f.customers...), nil
}

func (f *fakeBackend) ListTrainings(context.Context) ([]model.Training, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listTrainingHits++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Training(nil), f.trainings...), nil
}

func (f *fakeBackend) GetCustomer(_ context.Context, href string) (model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolvedHrefs = append(f.resolvedHrefs, href)
	return f.resolved, nil
}

func (f *fakeBackend) CreateCustomer(_ context.Context, in model.CustomerInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create_customer")
	if f.createErr != nil {
		return f.createErr
	}
	f.createdCustomers = append(f.createdCustomers, in)
	return nil
}

func (f *fakeBackend) UpdateCustomer(_ context.Context, self string, in model.CustomerInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update_customer")
	f.updatedCustomers[self] = in
	return nil
}

func (f *fakeBackend) DeleteCustomer(_ context.Context, self string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete_customer")
	f.deletedCustomers = append(f.deletedCustomers, self)
	return nil
}

func (f *fakeBackend) CreateTraining(_ context.Context, nt model.NewTraining) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create_training")
	if f.createErr != nil {
		return f.createErr
	}
	f.createdTrainings = append(f.createdTrainings, nt)
	return nil
}

func (f *fakeBackend) DeleteTraining(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete_training")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedTrainings = append(f.deletedTrainings, id)
	return nil
}

func (f *fakeBackend) CustomerURL(id string) string {
	return fakeBase + "/customers/" + id
}

func (f *fakeBackend) Reset(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("reset")
	return f.resetErr
}

func training(id int64, activity string, minutes int) model.Training {
	return model.Training{
		ID:       id,
		Date:     "2024-01-01T10:00:00.000+00:00",
		Duration: minutes,
		Activity: activity,
		Customer: model.Embedded(model.Customer{FirstName: "Ann", LastName: "Lee"}),
	}
}
