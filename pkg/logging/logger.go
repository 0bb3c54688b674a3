package logging

// Fields represents structured logging fields
type Fields map[string]interface{}

// Logger defines the interface for structured logging. The client only
// produces log calls; it never consumes logger state, so hosts can plug
// in whatever sink they run.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)

	// WithFields returns a logger that attaches fields to every entry
	WithFields(fields Fields) Logger
	// WithError returns a logger that attaches err to every entry
	WithError(err error) Logger
}

func mergeFields(base Fields, extra Fields) Fields {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(Fields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, Fields) {}
func (nopLogger) Info(string, Fields)  {}
func (nopLogger) Warn(string, Fields)  {}
func (nopLogger) Error(string, Fields) {}

func (n nopLogger) WithFields(Fields) Logger { return n }
func (n nopLogger) WithError(error) Logger   { return n }
