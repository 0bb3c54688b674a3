package graphql

import (
	"net/http"

	"github.com/testops-io/testops-go/pkg/logging"
)

// Client executes GraphQL requests through a retrying doer. A single
// Client is safe to share between concurrent callers; every call gets
// its own AttemptContext.
type Client struct {
	doer *RetryDoer
}

// ClientOption configures the Client.
type ClientOption func(*clientSettings)

type clientSettings struct {
	base       HTTPDoer
	retryOpts  []RetryOption
	httpClient *http.Client
}

// WithHTTPDoer swaps the underlying HTTPDoer (e.g. a test fake).
func WithHTTPDoer(doer HTTPDoer) ClientOption {
	return func(s *clientSettings) {
		s.base = doer
	}
}

// WithRetryOptions forwards options to the retry layer.
func WithRetryOptions(opts ...RetryOption) ClientOption {
	return func(s *clientSettings) {
		s.retryOpts = append(s.retryOpts, opts...)
	}
}

// NewClient builds a Client around a shared *http.Client. Per-attempt
// deadlines come from the AttemptContext, so the http.Client itself
// carries no timeout.
func NewClient(logger logging.Logger, opts ...ClientOption) *Client {
	settings := &clientSettings{
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(settings)
	}
	base := settings.base
	if base == nil {
		base = settings.httpClient
	}
	return &Client{doer: NewRetryDoer(base, logger, settings.retryOpts...)}
}

// Execute sends a built request under the given attempt context.
func (c *Client) Execute(req *http.Request, ac AttemptContext) (*http.Response, error) {
	return c.doer.Do(req, ac)
}
