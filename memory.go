package errchan

// Memory represents guest linear memory as seen by the host when rendering
// a diagnostic message across the boundary.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of guest linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates storage in guest linear memory. The guest owns
// whatever the host writes into an allocated region; deallocation is the
// guest's responsibility with its own allocator.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
}
