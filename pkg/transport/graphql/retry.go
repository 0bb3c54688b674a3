package graphql

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/testops-io/testops-go/pkg/errors"
	"github.com/testops-io/testops-go/pkg/logging"
)

// Backoff schedule bounds.
const (
	backoffBase = 1000 * time.Millisecond
	backoffCap  = 10000 * time.Millisecond
)

// HTTPError wraps HTTP error responses
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// AttemptContext carries the retry budget for one logical request. It
// is local to a single call; nothing here is shared or persisted.
type AttemptContext struct {
	MaxRetries int           // retries after the first attempt
	Timeout    time.Duration // per-attempt deadline, 0 means none
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// RetryDoer re-issues failed requests with exponential backoff. Only
// transport-level failures (network errors, timeouts, non-2xx) are
// retried; a 2xx body is returned as-is no matter what it contains.
type RetryDoer struct {
	base   HTTPDoer
	logger logging.Logger
	sleep  SleepFunc
}

// RetryOption configures a RetryDoer.
type RetryOption func(*RetryDoer)

// WithSleep replaces the backoff sleeper. Tests use this to capture
// delays without waiting them out.
func WithSleep(sleep SleepFunc) RetryOption {
	return func(d *RetryDoer) {
		d.sleep = sleep
	}
}

// NewRetryDoer wraps base with the retry policy.
func NewRetryDoer(base HTTPDoer, logger logging.Logger, opts ...RetryOption) *RetryDoer {
	if base == nil {
		base = http.DefaultClient
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &RetryDoer{
		base:   base,
		logger: logger,
		sleep:  defaultSleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Do issues req, retrying transport failures up to ac.MaxRetries. The
// returned response has a fully buffered body. A per-attempt timeout
// aborts that attempt only; the next attempt starts a fresh deadline.
func (d *RetryDoer) Do(req *http.Request, ac AttemptContext) (*http.Response, error) {
	// Buffer the body once so every attempt sends identical bytes
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrTransport, "read request body")
		}
	}

	retryCount := 0
	for {
		resp, err := d.attempt(req, body, ac.Timeout)
		if err == nil {
			return resp, nil
		}

		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, errors.WrapError(ctxErr, errors.ErrTransport, "request cancelled")
		}

		if retryCount >= ac.MaxRetries {
			return nil, errors.WrapError(err, errors.ErrTransport,
				fmt.Sprintf("exhausted after %d attempts", retryCount+1))
		}

		retryCount++
		delay := Backoff(retryCount)
		d.logger.Warn("retrying request", logging.Fields{
			"attempt":    retryCount,
			"backoff_ms": delay.Milliseconds(),
			"error":      err.Error(),
		})
		if serr := d.sleep(req.Context(), delay); serr != nil {
			return nil, errors.WrapError(serr, errors.ErrTransport, "cancelled during backoff")
		}
	}
}

// attempt issues one request with its own deadline and buffers the
// response body before the deadline is released.
func (d *RetryDoer) attempt(req *http.Request, body []byte, timeout time.Duration) (*http.Response, error) {
	ctx := req.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	attemptReq := req.Clone(ctx)
	if body != nil {
		attemptReq.Body = io.NopCloser(bytes.NewReader(body))
		attemptReq.ContentLength = int64(len(body))
	}

	resp, err := d.base.Do(attemptReq)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

// Backoff returns the delay before the given retry: 1s doubled per
// retry, capped at 10s.
func Backoff(retryCount int) time.Duration {
	delay := backoffBase
	for i := 0; i < retryCount; i++ {
		delay *= 2
		if delay >= backoffCap {
			return backoffCap
		}
	}
	return delay
}
