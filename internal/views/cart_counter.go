package views

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
)

// CartFetcher loads the current effective cart's line items.
type CartFetcher interface {
	Cart(ctx context.Context) ([]domain.CartItem, error)
}

// CartCounter is the header badge: a cached item count that re-fetches
// the cart on every CartChanged notification. Fetch failures show as an
// empty cart rather than an error.
type CartCounter struct {
	mu    sync.Mutex
	count int

	fetch  CartFetcher
	logger *zap.Logger
	unsub  func()
}

// NewCartCounter subscribes to CartChanged and returns a counter at zero.
func NewCartCounter(fetch CartFetcher, bus events.Bus, logger *zap.Logger) *CartCounter {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CartCounter{fetch: fetch, logger: logger}
	c.unsub = bus.Subscribe(events.TopicCartChanged, func() {
		c.Refresh(context.Background())
	})
	return c
}

// Refresh re-fetches the cart and updates the count.
func (c *CartCounter) Refresh(ctx context.Context) {
	count := 0
	items, err := c.fetch.Cart(ctx)
	if err != nil {
		c.logger.Debug("cart count refresh failed", zap.Error(err))
	} else {
		count = domain.CartCount(items)
	}

	c.mu.Lock()
	c.count = count
	c.mu.Unlock()
}

// Count returns the last fetched item count.
func (c *CartCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Close unsubscribes the counter from the bus.
func (c *CartCounter) Close() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}
