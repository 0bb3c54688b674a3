package core

import (
	"context"
	"io"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/testops-io/testops-go/pkg/config"
	"github.com/testops-io/testops-go/pkg/errors"
	"github.com/testops-io/testops-go/pkg/logging"
	"github.com/testops-io/testops-go/pkg/transport/graphql"
)

// Executor orchestrates one GraphQL request end to end: config merge,
// query validation, domain validation of variables, retried dispatch,
// response normalization. Safe for concurrent use; all per-call state
// (retry counter, backoff, deadlines) is local to the call.
type Executor struct {
	cfg             config.ClientConfig
	logger          logging.Logger
	client          *graphql.Client
	queryValidator  QueryValidator
	domainValidator DomainValidator
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the structured log sink.
func WithLogger(logger logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithClient replaces the transport client (tests inject fakes here).
func WithClient(client *graphql.Client) ExecutorOption {
	return func(e *Executor) {
		e.client = client
	}
}

// WithDomainValidator registers the external domain validation
// collaborator, run on non-empty variable payloads before dispatch.
func WithDomainValidator(v DomainValidator) ExecutorOption {
	return func(e *Executor) {
		e.domainValidator = v
	}
}

// NewExecutor builds an Executor over cfg. The query validator is
// required; validation runs on every call regardless of the
// ValidateSchema toggle (the flag is carried and logged only).
func NewExecutor(cfg config.ClientConfig, queryValidator QueryValidator, opts ...ExecutorOption) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "executor config")
	}
	if queryValidator == nil {
		return nil, errors.WrapError(errNoValidator, errors.ErrConfiguration, "executor config")
	}

	e := &Executor{
		cfg:            cfg,
		logger:         logging.NewNop(),
		queryValidator: queryValidator,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.client == nil {
		e.client = graphql.NewClient(e.logger)
	}
	return e, nil
}

// Execute runs one logical GraphQL request. The override, if any, is
// merged onto the executor's config for this call only. A terminal
// failure of any kind comes back as a single ErrOperation wrap
// embedding the root cause; a 2xx response with a populated errors
// array is NOT a failure and is returned whole.
func (e *Executor) Execute(
	ctx context.Context,
	query string,
	variables map[string]interface{},
	override *config.Override,
) (*Response, error) {
	cfg := e.cfg.Merge(override)

	log := e.logger.WithFields(logging.Fields{
		"request_id": uuid.NewString(),
		"endpoint":   cfg.Endpoint,
	})
	log.Info("executing graphql operation", logging.Fields{
		"has_variables":   len(variables) > 0,
		"validate_schema": cfg.ValidateSchema,
	})

	if err := e.queryValidator.Validate(query); err != nil {
		log.WithError(err).Error("query validation failed", nil)
		return nil, errors.WrapError(err, errors.ErrOperation, "execute query")
	}

	if len(variables) > 0 && e.domainValidator != nil {
		if err := e.domainValidator.Validate(variables); err != nil {
			log.WithError(err).Error("variables failed domain validation", nil)
			return nil, errors.WrapError(err, errors.ErrOperation, "execute query")
		}
	}

	builder := graphql.NewBuilder(cfg.Endpoint, query, variables, cfg.Headers, cfg.AuthToken)
	req, err := builder.Build(ctx)
	if err != nil {
		log.WithError(err).Error("request build failed", nil)
		return nil, errors.WrapError(err, errors.ErrOperation, "build request")
	}

	resp, err := e.client.Execute(req, graphql.AttemptContext{
		MaxRetries: cfg.RetryAttempts,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		log.WithError(err).Error("graphql operation failed", logging.Fields{"success": false})
		return nil, errors.WrapError(err, errors.ErrOperation, "execute query")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Error("graphql operation failed", logging.Fields{"success": false})
		return nil, errors.WrapError(err, errors.ErrOperation, "read response body")
	}

	var result Response
	if err := sonic.Unmarshal(raw, &result); err != nil {
		log.WithError(err).Error("graphql operation failed", logging.Fields{"success": false})
		return nil, errors.WrapError(err, errors.ErrOperation, "decode response body")
	}

	if result.HasErrors() {
		// Logged but still returned; the caller inspects partial results
		log.Error("graphql response contains errors", logging.Fields{
			"error_count": len(result.Errors),
			"first_error": result.Errors[0].Message,
		})
	}

	log.Info("graphql operation completed", logging.Fields{
		"success":    true,
		"has_data":   result.HasData(),
		"has_errors": result.HasErrors(),
	})
	return &result, nil
}

// Query is a typed convenience over Execute: it decodes the data
// payload into T and fails when the response has none.
func Query[T any](
	ctx context.Context,
	e *Executor,
	query string,
	variables map[string]interface{},
) (T, error) {
	var out T
	resp, err := e.Execute(ctx, query, variables, nil)
	if err != nil {
		return out, err
	}
	if err := resp.DecodeData(&out); err != nil {
		return out, err
	}
	return out, nil
}
