package trainerctl

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/okian/trainerdesk/internal/domain/model"
)

// Generated training ranges.
const (
	minDurationMinutes = 15
	maxDurationMinutes = 120
	trainingWindowDays = 30
)

var activities = []string{
	"Gym training", "Spinning", "Zumba", "Jogging", "Boxing", "Yoga", "Swimming",
}

// generateCustomers creates n customers with every field filled in.
func generateCustomers(f *gofakeit.Faker, n int) []model.CustomerInput {
	out := make([]model.CustomerInput, n)
	for i := range out {
		addr := f.Address()
		out[i] = model.CustomerInput{
			FirstName:     f.FirstName(),
			LastName:      f.LastName(),
			Email:         f.Email(),
			Phone:         f.Phone(),
			StreetAddress: addr.Street,
			Postcode:      addr.Zip,
			City:          addr.City,
		}
	}
	return out
}

// generateTrainings spreads n trainings over customerURLs, dated within
// trainingWindowDays around now on quarter hour boundaries.
func generateTrainings(f *gofakeit.Faker, customerURLs []string, n int, now time.Time) []model.NewTraining {
	if len(customerURLs) == 0 {
		return nil
	}
	window := trainingWindowDays * 24 * time.Hour
	out := make([]model.NewTraining, n)
	for i := range out {
		date := f.DateRange(now.Add(-window), now.Add(window)).Truncate(15 * time.Minute)
		out[i] = model.NewTraining{
			Date:     date.UTC().Format(backendDateLayout),
			Duration: f.Number(minDurationMinutes, maxDurationMinutes),
			Activity: f.RandomString(activities),
			Customer: customerURLs[f.Number(0, len(customerURLs)-1)],
		}
	}
	return out
}

const backendDateLayout = "2006-01-02T15:04:05.000Z07:00"
