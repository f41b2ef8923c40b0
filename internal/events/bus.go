package events

import "sync"

// Topic names a change notification channel.
type Topic string

const (
	// TopicAuthChanged fires when the stored credential changes.
	TopicAuthChanged Topic = "auth_changed"
	// TopicCartChanged fires when the effective cart may have changed.
	TopicCartChanged Topic = "cart_changed"
)

// Handler reacts to a published topic. Notifications carry no payload;
// handlers re-query the identity store for current values.
type Handler func()

// Bus is an in-process publish/subscribe mechanism scoped to one running
// application. Publish invokes every active subscriber synchronously
// before returning, so readers never observe a stale value across a
// suspension point.
type Bus interface {
	Publish(topic Topic)
	Subscribe(topic Topic, handler Handler) (unsubscribe func())
}

type memoryBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic]map[int]Handler
}

// NewBus creates an in-memory bus.
func NewBus() Bus {
	return &memoryBus{subs: make(map[Topic]map[int]Handler)}
}

// Publish synchronously invokes handlers subscribed to the topic. Each
// subscription active at publish time is invoked exactly once.
func (b *memoryBus) Publish(topic Topic) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}

// Subscribe registers a handler and returns its unsubscribe func. After
// unsubscribe returns, the handler receives no further notifications.
func (b *memoryBus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	b.subs[topic][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}
