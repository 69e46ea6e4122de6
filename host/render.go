package host

import (
	"github.com/wasmkit/errchan"
	"github.com/wasmkit/errchan/diag"
)

// WriteMessage renders a channel's diagnostic into guest memory: allocate a
// buffer with the guest's allocator, copy the message, hand (ptr, len) to
// the caller. The guest owns the buffer and frees it with its own allocator,
// independently of the channel itself.
func WriteMessage(e *errchan.Error, mem errchan.Memory, alloc errchan.Allocator) (uint32, uint32, *diag.Diagnostic) {
	msg := e.Message()
	size := uint32(len(msg))

	ptr, err := alloc.Alloc(size, 1)
	if err != nil || ptr == 0 {
		return 0, 0, diag.AllocationFailed(size, 1)
	}

	// A broken guest allocator can hand back a region past the end of its
	// own memory. Reject it before writing when the size is known.
	if sizer, ok := mem.(errchan.MemorySizer); ok {
		if uint64(ptr)+uint64(size) > uint64(sizer.Size()) {
			return 0, 0, diag.New(diag.SourceHost, diag.CodeOOB).
				Detail("allocator returned region [%d, %d) past guest memory end %d", ptr, ptr+size, sizer.Size()).
				Build()
		}
	}

	if err := mem.Write(ptr, msg); err != nil {
		return 0, 0, diag.New(diag.SourceHost, diag.CodeOOB).
			Detail("write %d bytes at %d past guest memory end", size, ptr).
			Cause(err).
			Build()
	}

	return ptr, size, nil
}
