// Package handle maps opaque integer handles to live error channels for
// consumers on the far side of an ABI boundary.
//
// A guest (or any consumer that cannot hold a Go pointer) refers to an error
// channel by a Handle issued from a Table. The table enforces the channel's
// Live -> Released lifecycle:
//
//	h := table.Put(err)        // Live
//	e, ok := table.Get(h)      // read while Live
//	ok = table.Drop(h)         // Released, exactly once
//	_, ok = table.Get(h)       // ok == false: released handles resolve to nothing
//
// Drop returns false for a handle that is unknown, already released, or has
// outstanding borrows, so double release and release-during-read are rejected
// rather than undefined behavior.
//
// # Borrows
//
// A consumer that reads a channel over several boundary calls takes a borrow
// first. Borrowed handles cannot be dropped until every borrow is returned;
// release happens-after all reads.
//
// # Observers
//
// Register observers to track handle lifecycle events. Subscribe returns a
// cancel function that removes the observer:
//
//	cancel := table.Subscribe(handle.ObserverFunc(func(ev handle.Event) {
//	    if ev.Type == handle.EventDropped {
//	        log.Printf("handle %d released", ev.Handle)
//	    }
//	}))
//	defer cancel()
//
// # Leaks
//
// Handles are not garbage collected; a handle never dropped holds its channel
// live until Close. Close force-drops everything and returns how many live
// entries it found, so embedders can log leaks when recycling an instance.
package handle
