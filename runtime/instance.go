package runtime

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wasmkit/errchan"
	"github.com/wasmkit/errchan/diag"
	"github.com/wasmkit/errchan/host"
)

// Instance is a single instantiation of a Module. Not thread-safe.
type Instance struct {
	mod api.Module
}

// Invoke calls an exported function and returns the outcome as a tagged
// Result: either the raw stack values or an owned error channel. A trap
// does not poison the instance; further invokes are allowed.
func (i *Instance) Invoke(ctx context.Context, name string, args ...uint64) errchan.Result[[]uint64] {
	fn := i.mod.ExportedFunction(name)
	if fn == nil {
		return errchan.Fail[[]uint64](errchan.FromDiagnostic(diag.NotFound("export", name)))
	}

	values, err := fn.Call(ctx, args...)
	if err != nil {
		return errchan.Fail[[]uint64](host.Capture(err))
	}
	return errchan.OK(values)
}

// Memory returns the instance's exported linear memory, or nil.
func (i *Instance) Memory() api.Memory {
	return i.mod.Memory()
}

// Raw returns the underlying wazero module for direct access.
func (i *Instance) Raw() api.Module {
	return i.mod
}

// Close releases the instance.
func (i *Instance) Close(ctx context.Context) error {
	return i.mod.Close(ctx)
}
