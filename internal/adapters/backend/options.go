package backend

import (
	"net/http"
	"time"

	"github.com/okian/trainerdesk/pkg/logger"
)

const megabyte = 1024 * 1024

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero or negative keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithResetURL sets the endpoint Reset posts to.
func WithResetURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.resetURL = u
		}
	}
}

// WithCustomerCache sizes the customer lookup cache and its entry lifetime.
// Non-positive values are ignored.
func WithCustomerCache(sizeMB int, ttl time.Duration) Option {
	return func(c *Client) {
		if sizeMB > 0 {
			c.cacheBytes = sizeMB * megabyte
		}
		if ttl >= time.Second {
			c.cacheTTL = ttl
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}
