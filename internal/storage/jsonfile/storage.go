package jsonfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

const (
	ordersFileName   = "orders.json"
	settingsFileName = "config.json"
)

// Options configures file-backed storage.
type Options struct {
	Dir       string
	CacheTTL  time.Duration
	MaxOrders int
	Timeout   time.Duration
}

// Storage acts as repository facade backed by JSON files in one directory.
type Storage struct {
	cache    *OrderCache
	orders   *orderRepository
	settings *settingsRepository
	logger   *slog.Logger
}

// New prepares the data directory and wires store, cache and repositories.
func New(opts Options, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	store := NewOrderStore(NewFile(filepath.Join(opts.Dir, ordersFileName), opts.Timeout), logger)
	cache := NewOrderCache(store, opts.CacheTTL, opts.MaxOrders, logger)

	return &Storage{
		cache:  cache,
		orders: newOrderRepository(cache, opts.MaxOrders, logger),
		settings: &settingsRepository{
			file:   NewFile(filepath.Join(opts.Dir, settingsFileName), opts.Timeout),
			logger: logger,
		},
		logger: logger,
	}, nil
}

// Orders returns the order repository.
func (s *Storage) Orders() repository.OrderRepository {
	return s.orders
}

// Settings returns the settings repository.
func (s *Storage) Settings() repository.SettingsRepository {
	return s.settings
}

// Warm loads the orders collection into the cache.
func (s *Storage) Warm(ctx context.Context) error {
	orders, err := s.cache.Get(ctx)
	if err != nil {
		return fmt.Errorf("warm order cache: %w", err)
	}
	s.logger.Info("order cache warmed", slog.Int("orders", len(orders)))
	return nil
}
