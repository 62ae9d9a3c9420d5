package steamworkshop

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public Steam Web API host.
const DefaultBaseURL = "https://api.steampowered.com"

// Client is the Steam Workshop API client.
//
// A Client holds configuration only. It is read-only after [NewClient]
// returns, so one Client can be shared by any number of goroutines.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     logrus.FieldLogger
	metrics    *Metrics
}

// NewClient creates a new Steam Workshop client.
//
// NewClient performs no network activity and cannot fail. Without
// [WithAPIKey] only the unauthenticated endpoints are usable
// ([Client.GetPublishedFileDetails], [Client.GetCollectionDetails]).
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		userAgent:  DefaultUserAgent,
		logger:     discardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HasAPIKey reports whether an API key is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// proxied reports whether the client talks to something other than Steam.
// A proxy is trusted to attach its own key.
func (c *Client) proxied() bool {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return true
	}
	return !strings.EqualFold(u.Hostname(), "api.steampowered.com")
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
