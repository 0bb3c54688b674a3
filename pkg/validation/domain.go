package validation

import (
	stderrors "errors"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/testops-io/testops-go/pkg/errors"
)

// SchemaValidator runs domain validation of a payload against a JSON
// Schema. It implements the core.DomainValidator collaborator.
type SchemaValidator struct {
	schema *gojsonschema.Schema
}

// NewSchemaValidator compiles schemaJSON once.
func NewSchemaValidator(schemaJSON string) (*SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "compile domain schema")
	}
	return &SchemaValidator{schema: schema}, nil
}

// Validate fails with a descriptive error listing every violated rule.
func (v *SchemaValidator) Validate(payload interface{}) error {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return errors.WrapError(err, errors.ErrValidation, "evaluate payload")
	}
	if result.Valid() {
		return nil
	}

	descriptions := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		descriptions = append(descriptions, re.String())
	}
	return errors.WrapError(
		stderrors.New(strings.Join(descriptions, "; ")),
		errors.ErrValidation,
		"payload failed domain validation",
	)
}
