package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/trainerdesk/internal/domain/model"
	"github.com/okian/trainerdesk/internal/domain/normalize"
	"github.com/okian/trainerdesk/pkg/logger"
	"github.com/okian/trainerdesk/pkg/metrics"
)

// ListCustomers fetches the customer collection.
func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	body, err := c.do(ctx, "list_customers", http.MethodGet, c.baseURL+"/customers", nil)
	if err != nil {
		return nil, err
	}
	list, err := normalize.CustomerCollection(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return list, nil
}

// GetCustomer resolves a customer link. Results are cached until they expire
// or the customer is changed through this client.
func (c *Client) GetCustomer(ctx context.Context, href string) (model.Customer, error) {
	if err := c.checkLink(href); err != nil {
		return model.Customer{}, err
	}

	key := []byte(href)
	if cached, err := c.cache.Get(key); err == nil {
		metrics.RecordCustomerCacheHit()
		return normalize.Customer(cached), nil
	}
	metrics.RecordCustomerCacheMiss()

	body, err := c.do(ctx, "get_customer", http.MethodGet, href, nil)
	if err != nil {
		return model.Customer{}, err
	}
	if !json.Valid(body) {
		return model.Customer{}, fmt.Errorf("%w: get_customer: invalid json", ErrMalformed)
	}

	if err := c.cache.Set(key, body, int(c.cacheTTL.Seconds())); err != nil {
		c.log.Warn(ctx, "failed to cache customer", logger.String("href", href), logger.Error(err))
	}
	return normalize.Customer(body), nil
}

// CreateCustomer posts a new customer.
func (c *Client) CreateCustomer(ctx context.Context, in model.CustomerInput) error {
	_, err := c.do(ctx, "create_customer", http.MethodPost, c.baseURL+"/customers", in)
	return err
}

// UpdateCustomer replaces the customer at its self link. A customer is
// reachable through several links, so the whole lookup cache is dropped.
func (c *Client) UpdateCustomer(ctx context.Context, selfHref string, in model.CustomerInput) error {
	if err := c.checkLink(selfHref); err != nil {
		return err
	}
	defer c.cache.Clear()
	_, err := c.do(ctx, "update_customer", http.MethodPut, selfHref, in)
	return err
}

// DeleteCustomer removes the customer at its self link.
func (c *Client) DeleteCustomer(ctx context.Context, selfHref string) error {
	if err := c.checkLink(selfHref); err != nil {
		return err
	}
	defer c.cache.Clear()
	_, err := c.do(ctx, "delete_customer", http.MethodDelete, selfHref, nil)
	return err
}
