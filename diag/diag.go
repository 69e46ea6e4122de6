package diag

import (
	"fmt"
	"strings"
)

// Source indicates where the failure originated
type Source string

const (
	SourceCompile Source = "compile" // module compilation and validation
	SourceLink    Source = "link"    // instantiation and import resolution
	SourceTrap    Source = "trap"    // guest trapped during execution
	SourceHost    Source = "host"    // host function or host-side contract
	SourceGuest   Source = "guest"   // guest-reported failure value
	SourceCancel  Source = "cancel"  // context cancellation or deadline
)

// Code categorizes the failure
type Code string

const (
	CodeUnreachable   Code = "unreachable"
	CodeOOB           Code = "out_of_bounds"
	CodeStackOverflow Code = "stack_overflow"
	CodeDivByZero     Code = "divide_by_zero"
	CodeIntOverflow   Code = "integer_overflow"
	CodeExit          Code = "exit"
	CodeOOM           Code = "out_of_memory"
	CodeInvalidHandle Code = "invalid_handle"
	CodeBadModule     Code = "bad_module"
	CodeNotFound      Code = "not_found"
	CodeCanceled      Code = "canceled"
	CodeInternal      Code = "internal"
)

// Diagnostic is the structured failure description carried by an error
// channel. It is immutable once built.
type Diagnostic struct {
	Cause  error
	Source Source
	Code   Code
	Detail string
	Frames []string
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(d.Source))
	b.WriteString("] ")
	b.WriteString(string(d.Code))

	if d.Detail != "" {
		b.WriteString(": ")
		b.WriteString(d.Detail)
	}

	if d.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(d.Cause.Error())
		b.WriteByte(')')
	}

	if len(d.Frames) > 0 {
		b.WriteString("\nguest stack:")
		for _, f := range d.Frames {
			b.WriteString("\n  ")
			b.WriteString(f)
		}
	}

	return b.String()
}

// Unwrap returns the underlying cause
func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// Is reports whether target matches this diagnostic
func (d *Diagnostic) Is(target error) bool {
	if t, ok := target.(*Diagnostic); ok {
		return d.Source == t.Source && d.Code == t.Code
	}
	return false
}

// Builder provides structured diagnostic construction
type Builder struct {
	d Diagnostic
}

// New creates a new diagnostic builder
func New(source Source, code Code) *Builder {
	return &Builder{
		d: Diagnostic{
			Source: source,
			Code:   code,
		},
	}
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.d.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.d.Detail = msg
	}
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.d.Cause = err
	return b
}

// Frames sets the captured guest stack frames
func (b *Builder) Frames(frames []string) *Builder {
	b.d.Frames = frames
	return b
}

// Build returns the constructed diagnostic
func (b *Builder) Build() *Diagnostic {
	return &b.d
}

// Convenience constructors for common failure patterns

// Trap creates a diagnostic for a guest trap
func Trap(code Code, cause error) *Diagnostic {
	return &Diagnostic{
		Source: SourceTrap,
		Code:   code,
		Cause:  cause,
	}
}

// Exit creates a diagnostic for a guest that exited with a code
func Exit(exitCode uint32) *Diagnostic {
	return &Diagnostic{
		Source: SourceTrap,
		Code:   CodeExit,
		Detail: fmt.Sprintf("guest exited with code %d", exitCode),
	}
}

// NotFound creates a not-found diagnostic
func NotFound(what, name string) *Diagnostic {
	return &Diagnostic{
		Source: SourceHost,
		Code:   CodeNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidHandle creates a diagnostic for a handle contract violation
func InvalidHandle(handle uint32) *Diagnostic {
	return &Diagnostic{
		Source: SourceHost,
		Code:   CodeInvalidHandle,
		Detail: fmt.Sprintf("handle %d is not live", handle),
	}
}

// BadModule creates a module loading diagnostic
func BadModule(detail string, cause error) *Diagnostic {
	return &Diagnostic{
		Source: SourceCompile,
		Code:   CodeBadModule,
		Detail: detail,
		Cause:  cause,
	}
}

// Link creates an instantiation diagnostic
func Link(cause error) *Diagnostic {
	return &Diagnostic{
		Source: SourceLink,
		Code:   CodeBadModule,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// AllocationFailed creates a guest allocation failure diagnostic
func AllocationFailed(size, align uint32) *Diagnostic {
	return &Diagnostic{
		Source: SourceHost,
		Code:   CodeOOM,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d) in guest memory", size, align),
	}
}

// Canceled creates a cancellation diagnostic
func Canceled(cause error) *Diagnostic {
	return &Diagnostic{
		Source: SourceCancel,
		Code:   CodeCanceled,
		Detail: "call canceled",
		Cause:  cause,
	}
}

// Internal creates an internal invariant violation diagnostic
func Internal(detail string) *Diagnostic {
	return &Diagnostic{
		Source: SourceHost,
		Code:   CodeInternal,
		Detail: detail,
	}
}

// GuestFailure creates a diagnostic for a failure value reported by the guest
func GuestFailure(detail string) *Diagnostic {
	return &Diagnostic{
		Source: SourceGuest,
		Code:   CodeInternal,
		Detail: detail,
	}
}
