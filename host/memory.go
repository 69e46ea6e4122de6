package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// MemoryWrapper adapts wazero api.Memory to errchan.Memory.
type MemoryWrapper struct {
	Mem api.Memory
}

// Read returns a view over guest memory.
func (m *MemoryWrapper) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("memory read out of bounds: offset=%d length=%d", offset, length)
	}
	return data, nil
}

// Write copies data into guest memory.
func (m *MemoryWrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return fmt.Errorf("memory write out of bounds: offset=%d length=%d", offset, len(data))
	}
	return nil
}

// Size returns the current guest memory size in bytes.
func (m *MemoryWrapper) Size() uint32 {
	return m.Mem.Size()
}

// AllocatorWrapper adapts a guest allocator export to errchan.Allocator.
// Realloc-shaped exports (cabi_realloc, canonical_abi_realloc) are called
// with the canonical (old_ptr, old_size, align, new_size) convention;
// malloc-shaped exports take just the size.
type AllocatorWrapper struct {
	Ctx    context.Context
	Fn     api.Function
	Malloc bool
}

// Alloc allocates a buffer in guest memory.
func (a *AllocatorWrapper) Alloc(size, align uint32) (uint32, error) {
	var (
		results []uint64
		err     error
	)
	if a.Malloc {
		results, err = a.Fn.Call(a.Ctx, uint64(size))
	} else {
		results, err = a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	}
	if err != nil {
		return 0, fmt.Errorf("allocation failed: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("allocation returned no result")
	}
	return uint32(results[0]), nil
}

var reallocNames = []string{"cabi_realloc", "canonical_abi_realloc"}
var mallocNames = []string{"alloc", "malloc"}

// guestAllocator finds the calling module's allocator export.
func guestAllocator(ctx context.Context, mod api.Module) *AllocatorWrapper {
	for _, name := range reallocNames {
		if fn := mod.ExportedFunction(name); fn != nil {
			return &AllocatorWrapper{Ctx: ctx, Fn: fn}
		}
	}
	for _, name := range mallocNames {
		if fn := mod.ExportedFunction(name); fn != nil {
			return &AllocatorWrapper{Ctx: ctx, Fn: fn, Malloc: true}
		}
	}
	return nil
}
