package logging

import "sync"

// Level identifies the severity of a recorded entry
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Entry is one captured log call
type Entry struct {
	Level   Level
	Message string
	Fields  Fields
	Err     error
}

// Recorder is an in-memory Logger used by tests to assert on emitted
// entries. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	fields  Fields
	err     error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Debug(msg string, fields Fields) { r.record(DebugLevel, msg, fields) }
func (r *Recorder) Info(msg string, fields Fields)  { r.record(InfoLevel, msg, fields) }
func (r *Recorder) Warn(msg string, fields Fields)  { r.record(WarnLevel, msg, fields) }
func (r *Recorder) Error(msg string, fields Fields) { r.record(ErrorLevel, msg, fields) }

func (r *Recorder) WithFields(fields Fields) Logger {
	return &recorderChild{root: r.root(), fields: mergeFields(r.fields, fields), err: r.err}
}

func (r *Recorder) WithError(err error) Logger {
	return &recorderChild{root: r.root(), fields: r.fields, err: err}
}

func (r *Recorder) root() *Recorder { return r }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ByLevel returns recorded entries matching level, in order.
func (r *Recorder) ByLevel(level Level) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) record(level Level, msg string, fields Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Level:   level,
		Message: msg,
		Fields:  mergeFields(r.fields, fields),
		Err:     r.err,
	})
}

// recorderChild forwards to the root recorder with bound fields.
type recorderChild struct {
	root   *Recorder
	fields Fields
	err    error
}

func (c *recorderChild) Debug(msg string, fields Fields) { c.record(DebugLevel, msg, fields) }
func (c *recorderChild) Info(msg string, fields Fields)  { c.record(InfoLevel, msg, fields) }
func (c *recorderChild) Warn(msg string, fields Fields)  { c.record(WarnLevel, msg, fields) }
func (c *recorderChild) Error(msg string, fields Fields) { c.record(ErrorLevel, msg, fields) }

func (c *recorderChild) WithFields(fields Fields) Logger {
	return &recorderChild{root: c.root, fields: mergeFields(c.fields, fields), err: c.err}
}

func (c *recorderChild) WithError(err error) Logger {
	return &recorderChild{root: c.root, fields: c.fields, err: err}
}

func (c *recorderChild) record(level Level, msg string, fields Fields) {
	c.root.mu.Lock()
	defer c.root.mu.Unlock()
	c.root.entries = append(c.root.entries, Entry{
		Level:   level,
		Message: msg,
		Fields:  mergeFields(c.fields, fields),
		Err:     c.err,
	})
}
