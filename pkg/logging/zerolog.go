package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using zerolog
type ZerologLogger struct {
	logger zerolog.Logger
	fields Fields
	err    error
}

// NewLogger creates a JSON-format zerolog-backed logger writing to w.
func NewLogger(w io.Writer, component string) *ZerologLogger {
	logger := zerolog.New(w).With().
		Timestamp().
		Str("component", component).
		Logger()

	return &ZerologLogger{logger: logger}
}

func (z *ZerologLogger) Debug(msg string, fields Fields) { z.emit(z.logger.Debug(), msg, fields) }
func (z *ZerologLogger) Info(msg string, fields Fields)  { z.emit(z.logger.Info(), msg, fields) }
func (z *ZerologLogger) Warn(msg string, fields Fields)  { z.emit(z.logger.Warn(), msg, fields) }
func (z *ZerologLogger) Error(msg string, fields Fields) { z.emit(z.logger.Error(), msg, fields) }

// WithFields returns a copy carrying extra fields on every entry
func (z *ZerologLogger) WithFields(fields Fields) Logger {
	return &ZerologLogger{
		logger: z.logger,
		fields: mergeFields(z.fields, fields),
		err:    z.err,
	}
}

// WithError returns a copy carrying err on every entry
func (z *ZerologLogger) WithError(err error) Logger {
	return &ZerologLogger{
		logger: z.logger,
		fields: z.fields,
		err:    err,
	}
}

func (z *ZerologLogger) emit(event *zerolog.Event, msg string, fields Fields) {
	if z.err != nil {
		event = event.Err(z.err)
	}
	for k, v := range z.fields {
		event = event.Interface(k, v)
	}
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
