package views

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/okian/trainerdesk/internal/domain/model"
)

const gridDateLayout = "02.01.2006 15:04"

// TrainingRow is one line of the trainings grid.
type TrainingRow struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Activity string `json:"activity"`
	Customer string `json:"customer"`
}

// TrainingRows formats trainings for display in loc (UTC when nil).
func TrainingRows(trainings []model.Training, loc *time.Location) []TrainingRow {
	if loc == nil {
		loc = time.UTC
	}
	out := make([]TrainingRow, len(trainings))
	for i, t := range trainings {
		date := model.NotAvailable
		if ts, err := ParseDate(t.Date); err == nil {
			date = ts.In(loc).Format(gridDateLayout)
		}
		out[i] = TrainingRow{
			ID:       t.ID,
			Date:     date,
			Duration: t.Duration,
			Activity: t.Activity,
			Customer: t.Customer.DisplayName(),
		}
	}
	return out
}

// WriteTrainingsCSV writes the grid export for trainings.
func WriteTrainingsCSV(w io.Writer, rows []TrainingRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Duration", "Activity", "Customer"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Date, strconv.Itoa(r.Duration), r.Activity, r.Customer}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCustomersCSV writes the grid export for customers.
func WriteCustomersCSV(w io.Writer, customers []model.Customer) error {
	cw := csv.NewWriter(w)
	header := []string{"First Name", "Last Name", "Street Address", "Postcode", "City", "Email", "Phone"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range customers {
		if err := cw.Write([]string{c.FirstName, c.LastName, c.StreetAddress, c.Postcode, c.City, c.Email, c.Phone}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
