package errchan

import (
	"fmt"

	"github.com/wasmkit/errchan/diag"
)

// Error is the outcome of a failed operation: an immutable, fully rendered
// diagnostic message plus the structured diagnostic it was rendered from.
// It is safe to read from multiple goroutines and needs no explicit release
// on the Go side of the boundary.
type Error struct {
	msg  string
	diag *diag.Diagnostic
}

// New creates an error channel carrying the given message.
func New(text string) *Error {
	return &Error{msg: nonEmpty(text)}
}

// Newf creates an error channel with a formatted message.
func Newf(format string, args ...any) *Error {
	return New(fmt.Sprintf(format, args...))
}

// FromDiagnostic renders a structured diagnostic into an error channel.
// The message is rendered exactly once, here; Message and Text only copy.
func FromDiagnostic(d *diag.Diagnostic) *Error {
	if d == nil {
		d = diag.Internal("nil diagnostic")
	}
	return &Error{msg: nonEmpty(d.Error()), diag: d}
}

// Wrap converts an arbitrary Go error into an error channel. A nil err
// yields nil. An err that already is an *Error passes through unchanged.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	if d, ok := err.(*diag.Diagnostic); ok {
		return FromDiagnostic(d)
	}
	return &Error{msg: nonEmpty(err.Error())}
}

// Message returns the rendered diagnostic text. Each call returns fresh
// storage owned by the caller; the error channel itself is never mutated.
func (e *Error) Message() []byte {
	return []byte(e.msg)
}

// Text returns the rendered diagnostic text as a string.
func (e *Error) Text() string {
	return e.msg
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.msg
}

// Diagnostic returns the structured form, or nil if the error was built
// from plain text.
func (e *Error) Diagnostic() *diag.Diagnostic {
	return e.diag
}

// Unwrap returns the structured diagnostic so errors.Is/As can match on
// Source and Code.
func (e *Error) Unwrap() error {
	if e.diag == nil {
		return nil
	}
	return e.diag
}

// A channel with no text would be indistinguishable from "no error" to a
// consumer that only sees the message. Never let that happen.
func nonEmpty(text string) string {
	if text == "" {
		return "unknown error"
	}
	return text
}
