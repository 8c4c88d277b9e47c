package form

import (
	"strings"
)

// ValidationError enumerates per-field violation messages. It is an expected outcome of user
// input, recovered by the caller and shown next to the offending fields.
type ValidationError struct {
	order  []string
	fields map[string][]string
}

// Add records a message for a field.
func (e *ValidationError) Add(field, msg string) {
	if e.fields == nil {
		e.fields = make(map[string][]string)
	}
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], msg)
}

// For returns the messages recorded for a field.
func (e *ValidationError) For(field string) []string {
	if e == nil {
		return nil
	}
	return e.fields[field]
}

// Fields returns a copy of all messages keyed by field name.
func (e *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// HasErrors reports whether any message was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.order) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.order))
	for _, f := range e.order {
		parts = append(parts, f+": "+strings.Join(e.fields[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
