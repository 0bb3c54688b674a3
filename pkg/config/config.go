package config

import (
	"fmt"
	"time"
)

// Default values applied when a field is left unset.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultRetryAttempts = 3
)

// ClientConfig holds everything needed to talk to a TestOps endpoint.
// Treat a value as immutable once handed to a client; per-call changes
// go through Merge, which never touches the receiver.
type ClientConfig struct {
	Endpoint       string            // Required: full GraphQL endpoint URL
	AuthToken      string            // Optional: sent as the Authorization header
	Headers        map[string]string // Headers attached to every request
	Timeout        time.Duration     // Per-attempt timeout
	RetryAttempts  int               // Retry cap per logical request
	ValidateSchema bool              // Declared toggle; validation currently always runs
}

// Override is a partial ClientConfig applied per call. Pointer fields
// distinguish "not set" from zero values; Headers merge key by key
// instead of replacing the map.
type Override struct {
	Endpoint       *string
	AuthToken      *string
	Headers        map[string]string
	Timeout        *time.Duration
	RetryAttempts  *int
	ValidateSchema *bool
}

// Default returns a ClientConfig with the documented defaults and the
// standard JSON headers. Endpoint and token are left for the caller.
func Default() ClientConfig {
	return ClientConfig{
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		Timeout:        DefaultTimeout,
		RetryAttempts:  DefaultRetryAttempts,
		ValidateSchema: true,
	}
}

// Merge applies an override onto c and returns the result. Scalar
// fields are replaced wholesale when present in the override; header
// maps are merged key by key with the override winning on conflict.
func (c ClientConfig) Merge(o *Override) ClientConfig {
	merged := c
	merged.Headers = make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		merged.Headers[k] = v
	}
	if o == nil {
		return merged
	}
	if o.Endpoint != nil {
		merged.Endpoint = *o.Endpoint
	}
	if o.AuthToken != nil {
		merged.AuthToken = *o.AuthToken
	}
	if o.Timeout != nil {
		merged.Timeout = *o.Timeout
	}
	if o.RetryAttempts != nil {
		merged.RetryAttempts = *o.RetryAttempts
	}
	if o.ValidateSchema != nil {
		merged.ValidateSchema = *o.ValidateSchema
	}
	for k, v := range o.Headers {
		merged.Headers[k] = v
	}
	return merged
}

// Validate checks that the config is usable.
func (c ClientConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be non-negative, got %d", c.RetryAttempts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", c.Timeout)
	}
	return nil
}
