package core

import (
	"encoding/json"
	stderrors "errors"

	"github.com/bytedance/sonic"

	"github.com/testops-io/testops-go/pkg/errors"
)

var (
	errNoData      = stderrors.New("response has no data")
	errNoValidator = stderrors.New("query validator is required")
)

// GraphQLError is one entry of a response's errors array.
type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// Response is the normalized GraphQL result. Errors being populated
// does not prevent Data from also being present; partial success is
// representable and the caller decides what to do with it.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// HasData reports whether the data field carries anything besides null.
func (r *Response) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}

// HasErrors reports whether the errors array is non-empty.
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// DecodeData unmarshals the data payload into v.
func (r *Response) DecodeData(v interface{}) error {
	if !r.HasData() {
		return errors.WrapError(errNoData, errors.ErrOperation, "decode response data")
	}
	if err := sonic.Unmarshal(r.Data, v); err != nil {
		return errors.WrapError(err, errors.ErrOperation, "decode response data")
	}
	return nil
}
