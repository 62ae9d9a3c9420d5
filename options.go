package steamworkshop

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the Steam Web API key sent as the "key" parameter.
// Keys are issued at https://steamcommunity.com/dev/apikey.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithBaseURL points the client at another host, for example a proxy that
// forwards to api.steampowered.com and attaches its own key.
//
// Searches through a proxy do not require [WithAPIKey]. Subscribe and
// Unsubscribe always do.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout bounds every call with a deadline. Zero, the default, leaves
// timeouts to the caller's context and the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger requests are traced to. Calls are logged at
// debug level; failures at warn. The API key is never logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records request counts and latencies into m.
// See [NewMetrics].
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}
