package host

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero/sys"

	"github.com/wasmkit/errchan"
	"github.com/wasmkit/errchan/diag"
)

func TestCapture_Nil(t *testing.T) {
	require.Nil(t, Capture(nil))
}

func TestCapture_Passthrough(t *testing.T) {
	e := errchan.New("already a channel")
	require.Same(t, e, Capture(e))
}

func TestClassify_Exit(t *testing.T) {
	err := fmt.Errorf("call failed: %w", sys.NewExitError(3))
	d := Classify(err)

	require.Equal(t, diag.SourceTrap, d.Source)
	require.Equal(t, diag.CodeExit, d.Code)
	require.Contains(t, d.Detail, "code 3")
}

func TestClassify_Canceled(t *testing.T) {
	d := Classify(fmt.Errorf("call: %w", context.Canceled))
	require.Equal(t, diag.SourceCancel, d.Source)
	require.Equal(t, diag.CodeCanceled, d.Code)
}

func TestClassify_DiagnosticPassthrough(t *testing.T) {
	want := diag.NotFound("export", "run")
	d := Classify(fmt.Errorf("invoke: %w", want))
	require.Same(t, want, d)
}

func TestClassify_TrapWithTrace(t *testing.T) {
	err := errors.New("wasm error: out of bounds memory access\nwasm stack trace:\n\t.$fail(i32)\n\t.$_start()")
	d := Classify(err)

	require.Equal(t, diag.SourceTrap, d.Source)
	require.Equal(t, diag.CodeOOB, d.Code)
	require.Equal(t, []string{".$fail(i32)", ".$_start()"}, d.Frames)
	require.Contains(t, d.Detail, "out of bounds memory access")
	require.ErrorIs(t, d, err)
}

func TestTrapCode(t *testing.T) {
	tests := []struct {
		msg  string
		code diag.Code
	}{
		{"wasm error: unreachable", diag.CodeUnreachable},
		{"wasm error: out of bounds memory access", diag.CodeOOB},
		{"call stack overflow", diag.CodeStackOverflow},
		{"wasm error: integer divide by zero", diag.CodeDivByZero},
		{"wasm error: integer overflow", diag.CodeIntOverflow},
		{"wasm error: invalid conversion to integer", diag.CodeIntOverflow},
		{"something novel", diag.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			require.Equal(t, tt.code, trapCode(tt.msg))
		})
	}
}
