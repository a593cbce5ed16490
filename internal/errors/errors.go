// Package errors defines the shared positioned-error shape used across
// the engine, condensed from the teacher's cue/errors
// (_examples/cue-lang-cue/cue/errors/errors.go): a Message payload
// distinct from formatting, a positioned Error built from it, and a List
// that collects many without losing any. Positions here are
// span.Range rather than cue/token.Pos, since that is this engine's
// native position type.
package errors

import (
	"fmt"
	"strings"

	"github.com/sysml-tools/sysml-engine/internal/span"
)

// Message holds a format string and its arguments for later, possibly
// localized, rendering — kept distinct from a plain string so a caller
// can inspect the raw parts instead of only the rendered text.
type Message struct {
	format string
	args   []interface{}
}

// NewMessagef builds a Message for human consumption.
func NewMessagef(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

// Msg returns the unformatted format string and its arguments.
func (m Message) Msg() (string, []interface{}) { return m.format, m.args }

func (m Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// Error is one positioned error (spec.md §7's "Semantic errors ... carry
// a code ... and optional related information" generalized to any
// internal fallible operation, not just the diagnostics pass).
type Error struct {
	Range span.Range
	Message
}

// Newf creates an Error at range r.
func Newf(r span.Range, format string, args ...interface{}) *Error {
	return &Error{Range: r, Message: NewMessagef(format, args...)}
}

func (e *Error) Error() string {
	return e.Message.Error()
}

// List collects multiple positioned errors, preserving order (cue/errors.list).
type List []*Error

// Add appends err to the list.
func (l *List) Add(err *Error) { *l = append(*l, err) }

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}
