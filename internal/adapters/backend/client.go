// Package backend is the HTTP client for the customers/trainings REST API.
//
// Every call is attempted once. Failures are classified as ErrTransport,
// ErrStatus (with a *StatusError) or ErrMalformed. The default transport
// propagates the caller's trace context to the backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/okian/trainerdesk/pkg/logger"
	"github.com/okian/trainerdesk/pkg/metrics"
)

const (
	maxErrorBody = 512
	outcomeOK    = "success"
	outcomeError = "error"
)

// Client talks to the backend.
type Client struct {
	base       *url.URL
	baseURL    string
	resetURL   string
	http       *http.Client
	timeout    time.Duration
	cache      *freecache.Cache
	cacheBytes int
	cacheTTL   time.Duration
	log        logger.Logger
}

// New creates a Client rooted at baseURL, e.g. "https://host/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		base:       base,
		baseURL:    base.String(),
		http:       &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		cacheBytes: 8 * megabyte,
		cacheTTL:   5 * time.Minute,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resetURL == "" {
		c.resetURL = base.Scheme + "://" + base.Host + "/reset"
	}
	c.cache = freecache.NewCache(c.cacheBytes)
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// CustomerURL builds the canonical URL of customer id, the form the backend
// expects when linking a training.
func (c *Client) CustomerURL(id string) string {
	return c.baseURL + "/customers/" + url.PathEscape(id)
}

// checkLink rejects links that would send a mutation to another host.
func (c *Client) checkLink(href string) error {
	u, err := url.Parse(href)
	if err != nil || !strings.EqualFold(u.Scheme, c.base.Scheme) || !strings.EqualFold(u.Host, c.base.Host) {
		return fmt.Errorf("%w: %q", ErrForeignLink, href)
	}
	return nil
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, target string, payload any) ([]byte, error) {
	start := time.Now()
	body, err := c.roundTrip(ctx, op, method, target, payload)

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	elapsed := time.Since(start)
	metrics.RecordUpstreamRequest(op, outcome, float64(elapsed.Microseconds())/1000)

	if err != nil {
		c.log.Warn(ctx, "backend request failed",
			logger.String("operation", op),
			logger.String("method", method),
			logger.String("url", target),
			logger.Duration("elapsed", elapsed),
			logger.Error(err))
		return nil, err
	}
	c.log.Debug(ctx, "backend request",
		logger.String("operation", op),
		logger.String("method", method),
		logger.Duration("elapsed", elapsed))
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, target string, payload any) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrTransport, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := respBytes
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{Operation: op, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	return respBytes, nil
}
