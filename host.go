package teaoverlay

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// ComposeFunc turns the ordered overlay contents into one renderable block.
type ComposeFunc[T any] func(contents []T) string

// RefreshMsg reports that a Host's registry changed. Programs route it to
// the Update of every active Host; a Host ignores refreshes meant for
// another.
type RefreshMsg struct {
	src any
}

// HostOption configures a Host at construction time.
type HostOption[T any] func(*Host[T])

// WithCompose sets the composition used when View renders without a
// per-call override.
func WithCompose[T any](fn ComposeFunc[T]) HostOption[T] {
	return func(h *Host[T]) { h.compose = fn }
}

// Host mirrors a Registry into a Bubble Tea program. Each independent
// consumer owns one Host: Activate snapshots the list and subscribes,
// every registry change replaces the snapshot via RefreshMsg, and View
// renders the snapshot. A deactivated host keeps its last snapshot but
// receives nothing further.
type Host[T any] struct {
	reg      *Registry[T]
	compose  ComposeFunc[T]
	active   bool
	snapshot []Item[T]
	signal   chan struct{}
	done     chan struct{}
	cancel   func()
}

// NewHost returns an inactive host mirroring reg.
func NewHost[T any](reg *Registry[T], opts ...HostOption[T]) *Host[T] {
	h := &Host[T]{reg: reg}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Activate subscribes to the registry and returns the command delivering
// RefreshMsg. Pair every Activate with a Deactivate on teardown, on every
// exit path: the registry keeps calling into the host until then.
// Activating an active host just returns the listen command again.
func (h *Host[T]) Activate() tea.Cmd {
	if h.active {
		return h.listen
	}
	h.active = true
	h.snapshot = h.reg.Items()
	h.signal = make(chan struct{}, 1)
	h.done = make(chan struct{})
	h.cancel = h.reg.Subscribe(h.wake)
	return h.listen
}

// wake collapses pending signals into one. Refresh re-reads current state,
// never a payload, so a collapsed signal loses nothing.
func (h *Host[T]) wake() {
	select {
	case h.signal <- struct{}{}:
	default:
	}
}

func (h *Host[T]) listen() tea.Msg {
	select {
	case <-h.signal:
		return RefreshMsg{src: h}
	case <-h.done:
		return nil
	}
}

// Update consumes this host's RefreshMsg, replacing the snapshot with the
// registry's current list and re-arming the listener. Every other message
// is ignored.
func (h *Host[T]) Update(msg tea.Msg) tea.Cmd {
	re, ok := msg.(RefreshMsg)
	if !ok || re.src != h || !h.active {
		return nil
	}
	h.snapshot = h.reg.Items()
	return h.listen
}

// Deactivate cancels the subscription and releases the pending listener.
// Safe to call more than once.
func (h *Host[T]) Deactivate() {
	if !h.active {
		return
	}
	h.active = false
	h.cancel()
	close(h.done)
}

// Items returns a copy of the host's current snapshot.
func (h *Host[T]) Items() []Item[T] { return slices.Clone(h.snapshot) }

// Len reports the snapshot's item count.
func (h *Host[T]) Len() int { return len(h.snapshot) }

// View renders the snapshot with the construction-time composition,
// falling back to DefaultCompose.
func (h *Host[T]) View() string { return h.ViewWith(nil) }

// ViewWith renders the snapshot with the given composition. A nil compose
// falls back to the construction-time composition, then DefaultCompose.
func (h *Host[T]) ViewWith(compose ComposeFunc[T]) string {
	contents := make([]T, len(h.snapshot))
	for i, it := range h.snapshot {
		contents[i] = it.Content
	}
	if compose == nil {
		compose = h.compose
	}
	if compose == nil {
		return DefaultCompose(contents)
	}
	return compose(contents)
}
