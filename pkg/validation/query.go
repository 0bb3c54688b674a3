package validation

import (
	stderrors "errors"
	"sync"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/asttransform"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astvalidation"

	"github.com/testops-io/testops-go/pkg/errors"
	"github.com/testops-io/testops-go/pkg/logging"
)

// QueryValidator checks GraphQL documents before they go on the wire.
// Two independent parses run per call: a structural parse of the
// document, then operation validation against the schema definition.
// Either failing fails the whole validation.
type QueryValidator struct {
	definition ast.Document
	logger     logging.Logger

	// the operation validator keeps walker state between runs
	mu        sync.Mutex
	validator *astvalidation.OperationValidator
}

// NewQueryValidator parses the SDL once and reuses it for every call.
func NewQueryValidator(sdl string, logger logging.Logger) (*QueryValidator, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	definition, report := astparser.ParseGraphqlDocumentString(sdl)
	if report.HasErrors() {
		return nil, errors.WrapError(stderrors.New(report.Error()), errors.ErrConfiguration, "parse schema definition")
	}
	if err := asttransform.MergeDefinitionWithBaseSchema(&definition); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "merge base schema")
	}
	return &QueryValidator{
		definition: definition,
		logger:     logger,
		validator:  astvalidation.DefaultOperationValidator(),
	}, nil
}

// Validate returns nil when query is both well-formed and valid against
// the schema. Stateless per call: same input, same outcome.
func (v *QueryValidator) Validate(query string) error {
	operation, report := astparser.ParseGraphqlDocumentString(query)
	if report.HasErrors() {
		v.logger.Warn("query failed structural parse", logging.Fields{"error": report.Error()})
		return errors.WrapError(stderrors.New(report.Error()), errors.ErrValidation, "parse query document")
	}

	v.mu.Lock()
	state := v.validator.Validate(&operation, &v.definition, &report)
	v.mu.Unlock()

	if state != astvalidation.Valid {
		v.logger.Warn("query failed schema validation", logging.Fields{"error": report.Error()})
		return errors.WrapError(stderrors.New(report.Error()), errors.ErrValidation, "validate query against schema")
	}

	v.logger.Debug("query validated", nil)
	return nil
}
