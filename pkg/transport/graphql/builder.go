package graphql

import (
	"bytes"
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	pkgerrors "github.com/pkg/errors"
)

// Builder constructs GraphQL requests.
type Builder struct {
	Endpoint  string
	Query     string
	Variables map[string]interface{}
	Headers   map[string]string
	AuthToken string
}

// NewBuilder sets up a GraphQL Builder.
// Endpoint is the full URL of your GraphQL endpoint.
func NewBuilder(
	endpoint, query string,
	variables map[string]interface{},
	headers map[string]string,
	authToken string,
) *Builder {
	return &Builder{
		Endpoint:  endpoint,
		Query:     query,
		Variables: variables,
		Headers:   headers,
		AuthToken: authToken,
	}
}

// Build creates the *http.Request with the {query, variables} JSON body.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	body := map[string]interface{}{
		"query":     b.Query,
		"variables": b.Variables,
	}
	buf, err := sonic.Marshal(body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "marshal graphql body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build graphql request")
	}
	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if b.AuthToken != "" {
		req.Header.Set("Authorization", b.AuthToken)
	}
	return req, nil
}
