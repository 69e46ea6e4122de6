package handle

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/wasmkit/errchan"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnHandleEvent(ev Event) {
	o.events = append(o.events, ev)
}

func TestTable_Lifecycle(t *testing.T) {
	table := NewTable()
	e := errchan.New("out of memory")

	h := table.Put(e)
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	got, ok := table.Get(h)
	if !ok || got != e {
		t.Fatal("Get on live handle failed")
	}
	if string(got.Message()) != "out of memory" {
		t.Fatalf("message = %q", got.Message())
	}

	if !table.Drop(h) {
		t.Fatal("Drop on live handle failed")
	}

	// Released handles resolve to nothing.
	if _, ok := table.Get(h); ok {
		t.Fatal("Get succeeded on released handle")
	}
	if table.Len() != 0 {
		t.Fatalf("Len() = %d after drop", table.Len())
	}
}

func TestTable_DoubleDrop(t *testing.T) {
	table := NewTable()
	h := table.Put(errchan.New("boom"))

	if !table.Drop(h) {
		t.Fatal("first Drop failed")
	}
	if table.Drop(h) {
		t.Fatal("second Drop succeeded; release must happen exactly once")
	}
}

func TestTable_InvalidHandles(t *testing.T) {
	table := NewTable()

	if _, ok := table.Get(0); ok {
		t.Error("Get(0) succeeded; handle 0 is reserved")
	}
	if table.Drop(0) {
		t.Error("Drop(0) succeeded")
	}
	if _, ok := table.Get(99); ok {
		t.Error("Get on never-issued handle succeeded")
	}
	if table.Drop(99) {
		t.Error("Drop on never-issued handle succeeded")
	}
	if table.Put(nil) != 0 {
		t.Error("Put(nil) issued a handle")
	}
}

func TestTable_HandleReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Put(errchan.New("first"))
	table.Drop(h1)

	h2 := table.Put(errchan.New("second"))
	if h2 != h1 {
		t.Fatalf("expected slot reuse, got %d then %d", h1, h2)
	}

	e, ok := table.Get(h2)
	if !ok || e.Text() != "second" {
		t.Fatal("reused slot resolved to wrong channel")
	}
}

func TestTable_Borrow(t *testing.T) {
	table := NewTable()
	h := table.Put(errchan.New("held"))

	if !table.Borrow(h) {
		t.Fatal("Borrow on live handle failed")
	}

	// Release must happen-after all reads: borrowed handles cannot drop.
	if table.Drop(h) {
		t.Fatal("Drop succeeded on borrowed handle")
	}

	if !table.Return(h) {
		t.Fatal("Return failed")
	}
	if table.Return(h) {
		t.Fatal("Return succeeded with no outstanding borrow")
	}

	if !table.Drop(h) {
		t.Fatal("Drop failed after borrows returned")
	}
	if table.Borrow(h) {
		t.Fatal("Borrow succeeded on released handle")
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	cancel := table.Subscribe(obs)

	h := table.Put(errchan.New("watched"))
	table.Borrow(h)
	table.Return(h)
	table.Drop(h)

	want := []EventType{EventCreated, EventBorrowed, EventReturned, EventDropped}
	if len(obs.events) != len(want) {
		t.Fatalf("got %d events, want %d", len(obs.events), len(want))
	}
	for i, ev := range obs.events {
		if ev.Type != want[i] {
			t.Errorf("event %d type = %d, want %d", i, ev.Type, want[i])
		}
		if ev.Handle != h {
			t.Errorf("event %d has handle %d, want %d", i, ev.Handle, h)
		}
	}

	cancel()
	table.Put(errchan.New("unwatched"))
	if len(obs.events) != len(want) {
		t.Error("canceled observer still notified")
	}
}

func TestTable_SubscribeObserverFunc(t *testing.T) {
	table := NewTable()

	var seen int
	cancel := table.Subscribe(ObserverFunc(func(Event) {
		seen++
	}))

	table.Put(errchan.New("first"))
	if seen != 1 {
		t.Fatalf("observer saw %d events, want 1", seen)
	}

	// Func values are uncomparable; removal must still work, and twice.
	cancel()
	cancel()

	table.Put(errchan.New("second"))
	if seen != 1 {
		t.Errorf("canceled ObserverFunc still notified, saw %d events", seen)
	}
}

func TestTable_SubscribeDuplicateObserver(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}

	cancel1 := table.Subscribe(obs)
	cancel2 := table.Subscribe(obs)

	table.Put(errchan.New("both"))
	if len(obs.events) != 2 {
		t.Fatalf("got %d events, want 2", len(obs.events))
	}

	// Each subscription has its own identity; canceling one keeps the other.
	cancel1()
	table.Put(errchan.New("one left"))
	if len(obs.events) != 3 {
		t.Fatalf("got %d events after first cancel, want 3", len(obs.events))
	}

	cancel2()
	table.Put(errchan.New("none left"))
	if len(obs.events) != 3 {
		t.Errorf("got %d events after second cancel, want 3", len(obs.events))
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	table.Put(errchan.New("leak one"))
	table.Put(errchan.New("leak two"))
	h := table.Put(errchan.New("dropped"))
	table.Drop(h)

	if leaked := table.Close(); leaked != 2 {
		t.Fatalf("Close() = %d leaked, want 2", leaked)
	}
	if leaked := table.Close(); leaked != 0 {
		t.Fatalf("second Close() = %d, want 0", leaked)
	}

	if table.Put(errchan.New("late")) != 0 {
		t.Error("Put issued a handle after Close")
	}
}

func TestTable_ConcurrentDrop(t *testing.T) {
	table := NewTable()
	h := table.Put(errchan.New("contested"))

	var dropped atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if table.Drop(h) {
				dropped.Add(1)
			}
		}()
	}
	wg.Wait()

	if n := dropped.Load(); n != 1 {
		t.Fatalf("%d goroutines observed a successful Drop, want exactly 1", n)
	}
}

func TestTable_ConcurrentReads(t *testing.T) {
	table := NewTable()
	h := table.Put(errchan.New("shared diagnostic"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				e, ok := table.Get(h)
				if !ok || e.Text() != "shared diagnostic" {
					t.Error("concurrent read saw wrong content")
					return
				}
			}
		}()
	}
	wg.Wait()
}
