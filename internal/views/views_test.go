package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
)

type fakeAuth struct {
	authed bool
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authed }

type fakeCart struct {
	items []domain.CartItem
	err   error
	calls int
}

func (f *fakeCart) Cart(ctx context.Context) ([]domain.CartItem, error) {
	f.calls++
	return f.items, f.err
}

func TestSessionWatcherStartsUnknown(t *testing.T) {
	bus := events.NewBus()
	watcher := NewSessionWatcher(&fakeAuth{authed: true}, bus)
	defer watcher.Close()

	assert.Equal(t, StateUnknown, watcher.State(), "no redirect decisions before the first read")

	watcher.Refresh()
	assert.Equal(t, StateAuthenticated, watcher.State())
}

func TestSessionWatcherFollowsAuthNotifications(t *testing.T) {
	bus := events.NewBus()
	source := &fakeAuth{authed: false}
	watcher := NewSessionWatcher(source, bus)
	defer watcher.Close()

	watcher.Refresh()
	assert.Equal(t, StateUnauthenticated, watcher.State())

	source.authed = true
	bus.Publish(events.TopicAuthChanged)
	assert.Equal(t, StateAuthenticated, watcher.State())

	source.authed = false
	bus.Publish(events.TopicAuthChanged)
	assert.Equal(t, StateUnauthenticated, watcher.State())
}

func TestSessionWatcherStopsAfterClose(t *testing.T) {
	bus := events.NewBus()
	source := &fakeAuth{authed: false}
	watcher := NewSessionWatcher(source, bus)
	watcher.Refresh()

	watcher.Close()
	source.authed = true
	bus.Publish(events.TopicAuthChanged)

	assert.Equal(t, StateUnauthenticated, watcher.State(), "torn-down views must not react")
}

func TestCartCounterRefetchesOnNotification(t *testing.T) {
	bus := events.NewBus()
	fetch := &fakeCart{items: []domain.CartItem{{Quantity: 2}, {Quantity: 3}}}

	counter := NewCartCounter(fetch, bus, nil)
	defer counter.Close()

	assert.Equal(t, 0, counter.Count())

	bus.Publish(events.TopicCartChanged)
	assert.Equal(t, 5, counter.Count())
	assert.Equal(t, 1, fetch.calls)

	fetch.items = []domain.CartItem{{Quantity: 1}}
	bus.Publish(events.TopicCartChanged)
	assert.Equal(t, 1, counter.Count())
}

func TestCartCounterShowsZeroOnFetchFailure(t *testing.T) {
	bus := events.NewBus()
	fetch := &fakeCart{items: []domain.CartItem{{Quantity: 4}}}

	counter := NewCartCounter(fetch, bus, nil)
	defer counter.Close()

	counter.Refresh(context.Background())
	assert.Equal(t, 4, counter.Count())

	fetch.err = errors.New("network down")
	bus.Publish(events.TopicCartChanged)
	assert.Equal(t, 0, counter.Count())
}
