package handle

import (
	"sync"

	"github.com/wasmkit/errchan"
)

// Table issues handles for error channels and enforces their lifecycle.
// It is safe for concurrent use; Drop on a given handle succeeds at most
// once regardless of how many goroutines race it.
type Table struct {
	slab      *slab
	observers []*observerReg
	obsMu     sync.RWMutex
}

// observerReg gives each subscription its own identity, so removal does
// not depend on the observer value being comparable (ObserverFunc is not).
type observerReg struct {
	o Observer
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{slab: newSlab()}
}

// Put registers a channel and returns its handle. Returns 0 after Close.
func (t *Table) Put(e *errchan.Error) Handle {
	if e == nil {
		return 0
	}

	h, ok := t.slab.put(e)
	if !ok {
		return 0
	}

	t.notify(Event{Type: EventCreated, Handle: h, Err: e})
	return h
}

// Get resolves a live handle to its channel. Released and unknown handles
// resolve to (nil, false).
func (t *Table) Get(h Handle) (*errchan.Error, bool) {
	return t.slab.get(h)
}

// Borrow pins a handle for a multi-call read. A borrowed handle cannot be
// dropped until every borrow is returned.
func (t *Table) Borrow(h Handle) bool {
	if !t.slab.borrow(h) {
		return false
	}
	e, _ := t.slab.get(h)
	t.notify(Event{Type: EventBorrowed, Handle: h, Err: e})
	return true
}

// Return releases one borrow taken with Borrow.
func (t *Table) Return(h Handle) bool {
	e, _ := t.slab.get(h)
	if !t.slab.returnBorrow(h) {
		return false
	}
	t.notify(Event{Type: EventReturned, Handle: h, Err: e})
	return true
}

// Drop releases a handle exactly once. It returns false if the handle is
// unknown, already released, or still borrowed.
func (t *Table) Drop(h Handle) bool {
	e, ok := t.slab.drop(h)
	if !ok {
		return false
	}
	t.notify(Event{Type: EventDropped, Handle: h, Err: e})
	return true
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	return t.slab.len()
}

// Each iterates over live handles until fn returns false.
func (t *Table) Each(fn func(Handle, *errchan.Error) bool) {
	t.slab.each(fn)
}

// Subscribe adds an observer for lifecycle events and returns a cancel
// function that removes it. Cancel is idempotent.
func (t *Table) Subscribe(o Observer) (cancel func()) {
	reg := &observerReg{o: o}

	t.obsMu.Lock()
	t.observers = append(t.observers, reg)
	t.obsMu.Unlock()

	return func() {
		t.obsMu.Lock()
		defer t.obsMu.Unlock()
		for i, r := range t.observers {
			if r == reg {
				t.observers = append(t.observers[:i], t.observers[i+1:]...)
				return
			}
		}
	}
}

// Close force-drops every live handle, stops accepting new ones, and
// returns how many entries were still live: anything nonzero means the
// consumer leaked handles.
func (t *Table) Close() int {
	return t.slab.close()
}

func (t *Table) notify(ev Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, r := range t.observers {
		r.o.OnHandleEvent(ev)
	}
}
