package views

import (
	"sync"

	"github.com/spec-kit/storefront/internal/events"
)

// SessionState is the derived authentication state of the running client.
type SessionState int

const (
	// StateUnknown holds before the identity store has been read once,
	// so views can avoid premature redirects.
	StateUnknown SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// AuthSource reports whether a credential is currently stored.
type AuthSource interface {
	IsAuthenticated() bool
}

// SessionWatcher tracks the session state for a view. It starts Unknown,
// resolves on the first Refresh, and re-derives on every AuthChanged
// notification. Close unsubscribes; call it on view teardown.
type SessionWatcher struct {
	mu    sync.Mutex
	state SessionState

	source AuthSource
	unsub  func()
}

// NewSessionWatcher subscribes to AuthChanged and returns a watcher in
// the Unknown state.
func NewSessionWatcher(source AuthSource, bus events.Bus) *SessionWatcher {
	w := &SessionWatcher{state: StateUnknown, source: source}
	w.unsub = bus.Subscribe(events.TopicAuthChanged, w.Refresh)
	return w
}

// Refresh re-reads the identity store and updates the state.
func (w *SessionWatcher) Refresh() {
	state := StateUnauthenticated
	if w.source.IsAuthenticated() {
		state = StateAuthenticated
	}

	w.mu.Lock()
	w.state = state
	w.mu.Unlock()
}

// State returns the last derived state.
func (w *SessionWatcher) State() SessionState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Close unsubscribes the watcher from the bus.
func (w *SessionWatcher) Close() {
	if w.unsub != nil {
		w.unsub()
		w.unsub = nil
	}
}
