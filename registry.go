package teaoverlay

import (
	"slices"
	"sync"
)

// ID identifies an item pushed with PushWith so it can be dismissed later.
type ID int64

// NoID tags items pushed with Push. They are not individually addressable
// and can only be removed by position (DismissLast) or wholesale
// (DismissAll).
const NoID ID = -1

// Item is one entry in a Registry: opaque content plus its identity tag.
type Item[T any] struct {
	ID      ID
	Content T
}

// Registry holds the ordered overlay list and signals every subscriber
// after each mutation. Insertion order is display order. Instances are
// fully isolated: the id counter, item list and subscriber list are never
// shared between registries. The zero value is ready to use.
type Registry[T any] struct {
	mu        sync.Mutex
	nextID    ID
	nextToken int
	items     []Item[T]
	subs      []subscriber
}

type subscriber struct {
	token int
	fn    func()
}

// New returns an empty registry.
func New[T any]() *Registry[T] { return &Registry[T]{} }

// Push appends content tagged NoID and notifies subscribers.
func (r *Registry[T]) Push(content T) {
	r.mu.Lock()
	r.items = append(r.items, Item[T]{ID: NoID, Content: content})
	fns := r.listeners()
	r.mu.Unlock()
	notify(fns)
}

// PushWith assigns the next id, calls factory exactly once with it, appends
// the returned content under that id, and notifies subscribers. The factory
// may capture the id, typically for a later self-dismiss. Ids are never
// reused within a registry's lifetime, even after removals.
//
// The factory runs outside the registry lock, so it may itself call back
// into the registry.
func (r *Registry[T]) PushWith(factory func(ID) T) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.mu.Unlock()

	content := factory(id)

	r.mu.Lock()
	r.items = append(r.items, Item[T]{ID: id, Content: content})
	fns := r.listeners()
	r.mu.Unlock()
	notify(fns)
}

// Dismiss removes the item carrying id, leaving the relative order of the
// rest untouched. An unknown id removes nothing; subscribers are notified
// either way.
func (r *Registry[T]) Dismiss(id ID) {
	r.mu.Lock()
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	fns := r.listeners()
	r.mu.Unlock()
	notify(fns)
}

// DismissLast removes the tail item, whatever its tag. Empty registries are
// left empty; subscribers are notified either way.
func (r *Registry[T]) DismissLast() {
	r.mu.Lock()
	if n := len(r.items); n > 0 {
		r.items = r.items[:n-1]
	}
	fns := r.listeners()
	r.mu.Unlock()
	notify(fns)
}

// DismissAll clears the list and notifies subscribers.
func (r *Registry[T]) DismissAll() {
	r.mu.Lock()
	r.items = nil
	fns := r.listeners()
	r.mu.Unlock()
	notify(fns)
}

// Items returns a snapshot copy of the current list in display order.
func (r *Registry[T]) Items() []Item[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

// Len reports the current item count.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Subscribe registers fn to run after every mutation and returns its cancel.
// Cancellation is keyed by registration, never by callback equality, so the
// same func may be subscribed more than once. Callers must cancel on
// teardown; the registry keeps invoking registered callbacks until then.
func (r *Registry[T]) Subscribe(fn func()) (cancel func()) {
	r.mu.Lock()
	token := r.nextToken
	r.nextToken++
	r.subs = append(r.subs, subscriber{token: token, fn: fn})
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		for i, s := range r.subs {
			if s.token == token {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				break
			}
		}
		r.mu.Unlock()
	}
}

// listeners snapshots the subscriber callbacks in registration order.
// Dispatch walks the snapshot, so a callback may subscribe, cancel, or
// mutate without corrupting the live list. Callers must hold r.mu.
func (r *Registry[T]) listeners() []func() {
	fns := make([]func(), len(r.subs))
	for i, s := range r.subs {
		fns[i] = s.fn
	}
	return fns
}

// notify runs callbacks outside the lock, one full pass per mutation.
func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// Default is a process-wide registry for programs hosting a single overlay
// stack. Content is the rendered string form that DefaultCompose stacks
// as-is. Programs needing isolated state (tests included) should construct
// their own registries with New instead.
var Default = New[string]()

// Push appends content to Default.
func Push(content string) { Default.Push(content) }

// PushWith pushes id-aware content onto Default.
func PushWith(factory func(ID) string) { Default.PushWith(factory) }

// Dismiss removes the item carrying id from Default.
func Dismiss(id ID) { Default.Dismiss(id) }

// DismissLast removes Default's tail item.
func DismissLast() { Default.DismissLast() }

// DismissAll clears Default.
func DismissAll() { Default.DismissAll() }

// Items snapshots Default's current list.
func Items() []Item[string] { return Default.Items() }
