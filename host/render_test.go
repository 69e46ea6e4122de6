package host

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmkit/errchan"
	"github.com/wasmkit/errchan/diag"
)

// fakeMemory is a flat byte slice standing in for guest linear memory.
type fakeMemory []byte

func (m fakeMemory) Read(offset, length uint32) ([]byte, error) {
	if int(offset)+int(length) > len(m) {
		return nil, errors.New("out of bounds")
	}
	return m[offset : offset+length], nil
}

func (m fakeMemory) Write(offset uint32, data []byte) error {
	if int(offset)+len(data) > len(m) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	copy(m[offset:], data)
	return nil
}

// bumpAllocator hands out consecutive regions from a fixed base.
type bumpAllocator struct {
	next uint32
	fail bool
}

func (a *bumpAllocator) Alloc(size, align uint32) (uint32, error) {
	if a.fail {
		return 0, errors.New("guest allocator exhausted")
	}
	if a.next == 0 {
		a.next = 8
	}
	ptr := a.next
	a.next += size
	return ptr, nil
}

func TestWriteMessage(t *testing.T) {
	mem := make(fakeMemory, 128)
	alloc := &bumpAllocator{}
	e := errchan.New("out of memory")

	ptr, n, derr := WriteMessage(e, mem, alloc)
	require.Nil(t, derr)
	require.EqualValues(t, len("out of memory"), n)

	buf, err := mem.Read(ptr, n)
	require.NoError(t, err)
	require.Equal(t, "out of memory", string(buf))

	// Each render allocates a fresh caller-owned buffer.
	ptr2, n2, derr := WriteMessage(e, mem, alloc)
	require.Nil(t, derr)
	require.NotEqual(t, ptr, ptr2)
	buf2, err := mem.Read(ptr2, n2)
	require.NoError(t, err)
	require.Equal(t, "out of memory", string(buf2))
}

func TestWriteMessage_AllocFailure(t *testing.T) {
	mem := make(fakeMemory, 128)
	e := errchan.New("whatever")

	_, _, derr := WriteMessage(e, mem, &bumpAllocator{fail: true})
	require.NotNil(t, derr)
	require.Equal(t, diag.CodeOOM, derr.Code)
}

// sizedMemory reports a memory size smaller than its backing storage, so
// only the size pre-check can catch an out-of-range allocation.
type sizedMemory struct {
	fakeMemory
	size uint32
}

func (m sizedMemory) Size() uint32 { return m.size }

func TestWriteMessage_AllocBeyondMemorySize(t *testing.T) {
	mem := sizedMemory{fakeMemory: make(fakeMemory, 128), size: 16}
	e := errchan.New("out of memory")

	// bumpAllocator places the 13-byte message at 8; 8+13 > 16 even though
	// the backing slice would have accepted the write.
	_, _, derr := WriteMessage(e, mem, &bumpAllocator{})
	require.NotNil(t, derr)
	require.Equal(t, diag.CodeOOB, derr.Code)
	require.Contains(t, derr.Detail, "past guest memory end")
}

func TestWriteMessage_WriteOutOfBounds(t *testing.T) {
	mem := make(fakeMemory, 8)
	e := errchan.New("this message does not fit in eight bytes")

	_, _, derr := WriteMessage(e, mem, &bumpAllocator{})
	require.NotNil(t, derr)
	require.Equal(t, diag.CodeOOB, derr.Code)
}
