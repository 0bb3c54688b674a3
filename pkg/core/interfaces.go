package core

// QueryValidator gates a query document before any network call.
type QueryValidator interface {
	Validate(query string) error
}

// DomainValidator is the external collaborator that checks a variables
// or input payload against business rules. The executor calls it but
// does not define its rules.
type DomainValidator interface {
	Validate(payload interface{}) error
}
