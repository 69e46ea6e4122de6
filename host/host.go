package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wasmkit/errchan"
	"github.com/wasmkit/errchan/diag"
	"github.com/wasmkit/errchan/handle"
)

// ModuleName is the namespace guests import the error-channel ABI from.
const ModuleName = "wasmkit:errchan/channel"

// Host owns the handle table backing the guest-visible error-channel ABI.
type Host struct {
	table *handle.Table
}

// New creates a host with an empty handle table.
func New() *Host {
	h := &Host{table: handle.NewTable()}
	h.table.Subscribe(handle.ObserverFunc(func(ev handle.Event) {
		if ev.Type == handle.EventDropped {
			Logger().Debug("error handle released", zap.Uint32("handle", uint32(ev.Handle)))
		}
	}))
	return h
}

// Table returns the handle table for host-side bookkeeping.
func (h *Host) Table() *handle.Table {
	return h.table
}

// Put registers an error channel and returns the handle a guest can use to
// read and release it. Ownership moves to whoever holds the handle.
func (h *Host) Put(e *errchan.Error) handle.Handle {
	return h.table.Put(e)
}

// Register instantiates the error-channel host module on r.
// Must be called before instantiating guests that import it.
func (h *Host) Register(ctx context.Context, r wazero.Runtime) (api.Closer, error) {
	return r.NewHostModuleBuilder(ModuleName).
		NewFunctionBuilder().WithFunc(h.errorMessage).Export("error-message").
		NewFunctionBuilder().WithFunc(h.errorDrop).Export("error-drop").
		Instantiate(ctx)
}

// Close force-drops any handles the guest leaked. Leaks are logged, not
// fatal: the channels behind them are reclaimed either way.
func (h *Host) Close() {
	if leaked := h.table.Close(); leaked > 0 {
		Logger().Warn("guest leaked error handles", zap.Int("count", leaked))
	}
}

// errorMessage renders a channel's diagnostic into the calling guest's
// memory and returns (ptr, len). Contract violations trap the instance;
// there is no way to report an error while reporting an error.
func (h *Host) errorMessage(ctx context.Context, mod api.Module, hdl uint32) (uint32, uint32) {
	e, ok := h.table.Get(handle.Handle(hdl))
	if !ok {
		panic(errchan.FromDiagnostic(diag.InvalidHandle(hdl)))
	}

	mem := mod.Memory()
	if mem == nil {
		panic(errchan.FromDiagnostic(diag.Internal("guest exports no memory")))
	}

	alloc := guestAllocator(ctx, mod)
	if alloc == nil {
		panic(errchan.FromDiagnostic(diag.Internal("guest exports no allocator")))
	}

	ptr, n, derr := WriteMessage(e, &MemoryWrapper{Mem: mem}, alloc)
	if derr != nil {
		panic(errchan.FromDiagnostic(derr))
	}
	return ptr, n
}

// errorDrop releases a handle exactly once. Dropping an unknown, released,
// or borrowed handle is a contract violation and traps the instance.
func (h *Host) errorDrop(_ context.Context, _ api.Module, hdl uint32) {
	if !h.table.Drop(handle.Handle(hdl)) {
		panic(errchan.FromDiagnostic(diag.InvalidHandle(hdl)))
	}
}
