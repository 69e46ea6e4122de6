package handle

import (
	"sync"

	"github.com/wasmkit/errchan"
)

// slab is the storage behind a Table: a growable entry array with a free
// list, so handle values stay dense and released slots are reused.
type slab struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	err     *errchan.Error
	borrows uint32
	live    bool
}

func newSlab() *slab {
	return &slab{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

func (s *slab) put(e *errchan.Error) (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, false
	}

	ent := entry{err: e, live: true}

	if n := len(s.freeList); n > 0 {
		h := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		s.entries[h-1] = ent
		return h, true
	}

	s.entries = append(s.entries, ent)
	return Handle(len(s.entries)), true
}

func (s *slab) get(h Handle) (*errchan.Error, bool) {
	if h == 0 {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := int(h) - 1
	if idx >= len(s.entries) || !s.entries[idx].live {
		return nil, false
	}
	return s.entries[idx].err, true
}

// drop releases an entry. It fails on unknown, already released, or
// borrowed handles; that failure is what turns double release into a
// detectable contract violation instead of a use-after-free.
func (s *slab) drop(h Handle) (*errchan.Error, bool) {
	if h == 0 {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(h) - 1
	if idx >= len(s.entries) {
		return nil, false
	}

	ent := &s.entries[idx]
	if !ent.live || ent.borrows > 0 {
		return nil, false
	}

	e := ent.err
	ent.live = false
	ent.err = nil
	ent.borrows = 0
	s.freeList = append(s.freeList, h)
	return e, true
}

func (s *slab) borrow(h Handle) bool {
	if h == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(h) - 1
	if idx >= len(s.entries) || !s.entries[idx].live {
		return false
	}
	s.entries[idx].borrows++
	return true
}

func (s *slab) returnBorrow(h Handle) bool {
	if h == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(h) - 1
	if idx >= len(s.entries) || !s.entries[idx].live || s.entries[idx].borrows == 0 {
		return false
	}
	s.entries[idx].borrows--
	return true
}

func (s *slab) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for i := range s.entries {
		if s.entries[i].live {
			n++
		}
	}
	return n
}

func (s *slab) each(fn func(Handle, *errchan.Error) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.entries {
		if s.entries[i].live {
			if !fn(Handle(i+1), s.entries[i].err) {
				return
			}
		}
	}
}

// close marks the slab terminal and force-drops everything still live,
// returning the leak count.
func (s *slab) close() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	s.closed = true

	leaked := 0
	for i := range s.entries {
		if s.entries[i].live {
			leaked++
		}
	}

	s.entries = nil
	s.freeList = nil
	return leaked
}
