package host

import (
	"context"
	"errors"
	"strings"

	"github.com/tetratelabs/wazero/sys"

	"github.com/wasmkit/errchan"
	"github.com/wasmkit/errchan/diag"
)

// Capture classifies an error returned by a wazero call into an error
// channel. A nil err yields nil; an err that already is a channel passes
// through unchanged.
func Capture(err error) *errchan.Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*errchan.Error); ok {
		return e
	}
	return errchan.FromDiagnostic(Classify(err))
}

// Classify builds the structured diagnostic for a wazero call error.
func Classify(err error) *diag.Diagnostic {
	// Order matters: wazero reports context cancellation as a sys.ExitError
	// with a reserved exit code, so check cancellation first.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return diag.Canceled(err)
	}

	var exitErr *sys.ExitError
	if errors.As(err, &exitErr) {
		return diag.Exit(exitErr.ExitCode())
	}

	var d *diag.Diagnostic
	if errors.As(err, &d) {
		return d
	}

	msg, frames := splitTrace(err.Error())
	b := diag.New(diag.SourceTrap, trapCode(msg)).Cause(err).Frames(frames)
	if len(frames) > 0 {
		b.Detail("%s", msg)
	}
	return b.Build()
}

// splitTrace separates a wazero error message from the guest stack trace
// wazero appends after a "wasm stack trace:" marker.
func splitTrace(msg string) (string, []string) {
	head, tail, found := strings.Cut(msg, "\nwasm stack trace:")
	if !found {
		return msg, nil
	}

	var frames []string
	for _, line := range strings.Split(tail, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			frames = append(frames, line)
		}
	}
	return strings.TrimSpace(head), frames
}

// trapCode maps wazero's engine trap messages onto diagnostic codes.
func trapCode(msg string) diag.Code {
	switch {
	case strings.Contains(msg, "unreachable"):
		return diag.CodeUnreachable
	case strings.Contains(msg, "out of bounds memory access"):
		return diag.CodeOOB
	case strings.Contains(msg, "stack overflow"):
		return diag.CodeStackOverflow
	case strings.Contains(msg, "integer divide by zero"):
		return diag.CodeDivByZero
	case strings.Contains(msg, "integer overflow"),
		strings.Contains(msg, "invalid conversion to integer"):
		return diag.CodeIntOverflow
	default:
		return diag.CodeInternal
	}
}
