package teaoverlay

import (
	"fmt"
	"testing"
)

func contents[T any](items []Item[T]) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Content
	}
	return out
}

func TestPushDismissScenario(t *testing.T) {
	r := New[string]()
	if got := r.Len(); got != 0 {
		t.Fatalf("new registry has %d items, want 0", got)
	}

	r.Push("A")
	items := r.Items()
	if len(items) != 1 || items[0].ID != NoID || items[0].Content != "A" {
		t.Fatalf("after Push: %v", items)
	}

	r.PushWith(func(id ID) string { return fmt.Sprintf("B%d", id) })
	items = r.Items()
	if len(items) != 2 {
		t.Fatalf("after PushWith: %d items, want 2", len(items))
	}
	if items[1].ID != 0 || items[1].Content != "B0" {
		t.Fatalf("id-bearing item = (%d, %q), want (0, \"B0\")", items[1].ID, items[1].Content)
	}

	r.Dismiss(0)
	items = r.Items()
	if len(items) != 1 || items[0].Content != "A" {
		t.Fatalf("after Dismiss(0): %v", items)
	}

	r.DismissLast()
	if got := r.Len(); got != 0 {
		t.Fatalf("after DismissLast: %d items, want 0", got)
	}
}

func TestIDsNeverReusedAcrossRemovals(t *testing.T) {
	r := New[int]()
	seen := map[ID]bool{}
	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			r.PushWith(func(id ID) int {
				if seen[id] {
					t.Fatalf("id %d assigned twice", id)
				}
				seen[id] = true
				return int(id)
			})
		}
		r.DismissAll()
	}
	if len(seen) != 12 {
		t.Fatalf("assigned %d ids, want 12", len(seen))
	}
}

func TestDismissRemovesOnlyTarget(t *testing.T) {
	r := New[string]()
	var ids []ID
	for _, s := range []string{"a", "b", "c", "d"} {
		s := s
		r.PushWith(func(id ID) string {
			ids = append(ids, id)
			return s
		})
	}
	r.Dismiss(ids[1])
	got := contents(r.Items())
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order disturbed: got %v, want %v", got, want)
		}
	}
}

func TestDismissUnknownIDIsNoOpButNotifies(t *testing.T) {
	r := New[string]()
	r.Push("keep")
	fired := 0
	cancel := r.Subscribe(func() { fired++ })
	defer cancel()

	r.Dismiss(99)
	if fired != 1 {
		t.Fatalf("unknown-id dismiss fired %d notifications, want 1", fired)
	}
	if got := contents(r.Items()); len(got) != 1 || got[0] != "keep" {
		t.Fatalf("list changed: %v", got)
	}
}

func TestDismissLastOnEmpty(t *testing.T) {
	r := New[string]()
	fired := 0
	cancel := r.Subscribe(func() { fired++ })
	defer cancel()

	r.DismissLast()
	if got := r.Len(); got != 0 {
		t.Fatalf("empty registry grew to %d items", got)
	}
	if fired != 1 {
		t.Fatalf("fired %d notifications, want 1", fired)
	}
}

func TestDismissAll(t *testing.T) {
	r := New[string]()
	r.Push("a")
	r.PushWith(func(ID) string { return "b" })
	r.Push("c")
	r.DismissAll()
	if got := r.Len(); got != 0 {
		t.Fatalf("after DismissAll: %d items, want 0", got)
	}
	r.DismissAll()
	if got := r.Len(); got != 0 {
		t.Fatalf("repeat DismissAll: %d items, want 0", got)
	}
}

func TestNotificationPerMutationInRegistrationOrder(t *testing.T) {
	r := New[string]()
	var order []string
	c1 := r.Subscribe(func() { order = append(order, "first") })
	defer c1()
	c2 := r.Subscribe(func() { order = append(order, "second") })
	defer c2()

	r.Push("x")
	r.DismissLast()

	want := []string{"first", "second", "first", "second"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("dispatch order %v, want %v", order, want)
		}
	}
}

func TestCancelledSubscriberStopsFiring(t *testing.T) {
	r := New[string]()
	var a, b int
	cancelA := r.Subscribe(func() { a++ })
	cancelB := r.Subscribe(func() { b++ })
	defer cancelB()

	r.Push("one")
	cancelA()
	r.Push("two")

	if a != 1 {
		t.Fatalf("cancelled subscriber fired %d times, want 1", a)
	}
	if b != 2 {
		t.Fatalf("remaining subscriber fired %d times, want 2", b)
	}
}

func TestSameCallbackSubscribedTwice(t *testing.T) {
	r := New[string]()
	count := 0
	fn := func() { count++ }
	cancel1 := r.Subscribe(fn)
	cancel2 := r.Subscribe(fn)
	defer cancel2()

	r.Push("x")
	if count != 2 {
		t.Fatalf("double-subscribed callback fired %d times, want 2", count)
	}

	cancel1()
	cancel1() // repeat cancel is a no-op
	r.Push("y")
	if count != 3 {
		t.Fatalf("after one cancel fired %d times total, want 3", count)
	}
}

func TestReentrantMutationFromCallback(t *testing.T) {
	r := New[string]()
	pushedBack := false
	cancel := r.Subscribe(func() {
		if !pushedBack {
			pushedBack = true
			r.Push("from-callback")
		}
	})
	defer cancel()

	r.Push("outer")
	got := contents(r.Items())
	if len(got) != 2 || got[0] != "outer" || got[1] != "from-callback" {
		t.Fatalf("reentrant push produced %v", got)
	}
}

func TestRegistriesAreIsolated(t *testing.T) {
	a := New[string]()
	b := New[string]()
	bFired := 0
	cancel := b.Subscribe(func() { bFired++ })
	defer cancel()

	a.Push("only-in-a")
	a.PushWith(func(id ID) string { return fmt.Sprintf("a%d", id) })
	if got := b.Len(); got != 0 {
		t.Fatalf("registry b has %d items after mutating a", got)
	}
	if bFired != 0 {
		t.Fatalf("registry b notified %d times by a's mutations", bFired)
	}

	// counters do not bleed either: b's first id is still 0
	b.PushWith(func(id ID) string {
		if id != 0 {
			t.Fatalf("b's first id = %d, want 0", id)
		}
		return "b0"
	})
}

func TestDefaultRegistryForwarders(t *testing.T) {
	DismissAll()
	t.Cleanup(DismissAll)

	Push("hello")
	PushWith(func(id ID) string { return fmt.Sprintf("timed-%d", id) })
	items := Items()
	if len(items) != 2 {
		t.Fatalf("Default has %d items, want 2", len(items))
	}
	if items[0].ID != NoID {
		t.Fatalf("plain push carries id %d, want NoID", items[0].ID)
	}
	DismissLast()
	Dismiss(items[1].ID) // already gone by position; unknown id stays a no-op
	if got := len(Items()); got != 1 {
		t.Fatalf("Default has %d items, want 1", got)
	}
}
