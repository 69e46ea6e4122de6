package handle

import (
	"github.com/wasmkit/errchan"
)

// Handle is an opaque reference to a live error channel in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a handle lifecycle event.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventReturned
)

// Event describes a handle lifecycle transition.
type Event struct {
	Err    *errchan.Error
	Handle Handle
	Type   EventType
}

// Observer receives handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnHandleEvent(ev Event) { f(ev) }
