package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/trainerdesk/internal/domain/model"
	"github.com/okian/trainerdesk/internal/domain/normalize"
)

// ResetConfirmation is the exact body the reset endpoint answers with.
const ResetConfirmation = "DB reset done"

// ListTrainings fetches every training with its customer embedded.
func (c *Client) ListTrainings(ctx context.Context) ([]model.Training, error) {
	body, err := c.do(ctx, "list_trainings", http.MethodGet, c.baseURL+"/gettrainings", nil)
	if err != nil {
		return nil, err
	}
	list, err := normalize.Trainings(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return list, nil
}

// CreateTraining posts a new training. nt.Customer must be a customer URL.
func (c *Client) CreateTraining(ctx context.Context, nt model.NewTraining) error {
	if err := c.checkLink(nt.Customer); err != nil {
		return err
	}
	_, err := c.do(ctx, "create_training", http.MethodPost, c.baseURL+"/trainings", nt)
	return err
}

// DeleteTraining removes training id.
func (c *Client) DeleteTraining(ctx context.Context, id int64) error {
	target := c.baseURL + "/trainings/" + url.PathEscape(strconv.FormatInt(id, 10))
	_, err := c.do(ctx, "delete_training", http.MethodDelete, target, nil)
	return err
}

// Reset restores the backend's demo data. Any answer other than the
// confirmation text is a failure.
func (c *Client) Reset(ctx context.Context) error {
	body, err := c.do(ctx, "reset", http.MethodPost, c.resetURL, nil)
	if err != nil {
		return err
	}
	c.cache.Clear()
	if got := string(body); got != ResetConfirmation {
		return fmt.Errorf("%w: got %q", ErrResetRejected, got)
	}
	return nil
}
