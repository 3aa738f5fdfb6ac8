package jsonfile

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

type orderBackend interface {
	Read(ctx context.Context) ([]model.Order, error)
	Write(ctx context.Context, orders []model.Order) error
}

// OrderCache keeps a time-bounded snapshot of the orders collection in front
// of the store. Reads within ttl are served from memory; writes go through to
// the store before the snapshot changes.
type OrderCache struct {
	backend orderBackend
	ttl     time.Duration
	limit   int
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	snapshot []model.Order
	loadedAt time.Time
	loaded   bool
}

// NewOrderCache creates cache with the given freshness window and retention cap.
func NewOrderCache(backend orderBackend, ttl time.Duration, limit int, logger *slog.Logger) *OrderCache {
	return &OrderCache{
		backend: backend,
		ttl:     ttl,
		limit:   limit,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns a copy of the collection, reloading it from the store when the
// snapshot is missing or older than ttl. On a store failure the previous
// snapshot (or an empty collection) is returned together with the error.
func (c *OrderCache) Get(ctx context.Context) ([]model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.now().Sub(c.loadedAt) < c.ttl {
		return slices.Clone(c.snapshot), nil
	}

	orders, err := c.backend.Read(ctx)
	if err != nil {
		c.logger.Error("load orders failed", slog.String("error", err.Error()))
		if c.snapshot == nil {
			return []model.Order{}, err
		}
		return slices.Clone(c.snapshot), err
	}

	c.snapshot = retain(orders, c.limit)
	c.loadedAt = c.now()
	c.loaded = true
	return slices.Clone(c.snapshot), nil
}

// Put persists orders and, once the store confirms, replaces the snapshot.
func (c *OrderCache) Put(ctx context.Context, orders []model.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := slices.Clone(retain(orders, c.limit))
	if err := c.backend.Write(ctx, next); err != nil {
		return err
	}
	c.snapshot = next
	c.loadedAt = c.now()
	c.loaded = true
	return nil
}

// retain keeps the most recent limit orders, preserving their relative order.
func retain(orders []model.Order, limit int) []model.Order {
	if limit <= 0 || len(orders) <= limit {
		return orders
	}
	return orders[len(orders)-limit:]
}
