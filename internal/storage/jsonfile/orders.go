package jsonfile

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

type orderRepository struct {
	cache  *OrderCache
	limit  int
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	// mu serializes read-modify-write cycles.
	mu sync.Mutex
}

func newOrderRepository(cache *OrderCache, limit int, logger *slog.Logger) *orderRepository {
	return &orderRepository{
		cache:  cache,
		limit:  limit,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create assigns identity and initial lifecycle state, appends and persists the order.
func (r *orderRepository) Create(ctx context.Context, draft model.Order) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", domainErrors.ErrStorage)
	}

	order := draft
	order.ID = r.uniqueID(orders)
	order.Status = model.OrderStatusPending
	order.PaymentState = model.PaymentUnpaid
	order.PaidAt = nil
	order.Notes = ""
	order.CreatedAt = r.now().UTC()

	orders = append(orders, order)
	if err := r.cache.Put(ctx, retain(orders, r.limit)); err != nil {
		r.logger.Error("persist new order failed", slog.String("order_id", order.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("persist order: %w", domainErrors.ErrStorage)
	}

	return &order, nil
}

// FindByIDPrefix returns the first order, in insertion order, whose id starts with prefix.
func (r *orderRepository) FindByIDPrefix(ctx context.Context, prefix string) (*model.Order, error) {
	orders := r.read(ctx)
	i := indexByPrefix(orders, prefix)
	if i < 0 {
		return nil, domainErrors.ErrNotFound
	}
	order := orders[i]
	return &order, nil
}

// FindLatestPendingBySubmitter scans newest first for a pending order of the submitter.
func (r *orderRepository) FindLatestPendingBySubmitter(ctx context.Context, submitterID string) (*model.Order, error) {
	orders := r.read(ctx)
	i := indexLatestPending(orders, submitterID)
	if i < 0 {
		return nil, domainErrors.ErrNotFound
	}
	order := orders[i]
	return &order, nil
}

// ListByStatus returns all orders, or those whose status matches case-insensitively.
func (r *orderRepository) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	orders := r.read(ctx)
	status = strings.TrimSpace(status)
	if status == "" {
		return orders, nil
	}
	return slices.DeleteFunc(orders, func(o model.Order) bool {
		return !strings.EqualFold(o.Status, status)
	}), nil
}

// UpdateStatus sets a free-form status on the referenced order.
func (r *orderRepository) UpdateStatus(ctx context.Context, ref, status string) (*model.Order, error) {
	return r.mutate(ctx, ref, func(o *model.Order) {
		o.Status = status
	})
}

// SetPayment toggles payment state and paidAt.
func (r *orderRepository) SetPayment(ctx context.Context, ref string, paid bool) (*model.Order, error) {
	now := r.now().UTC()
	return r.mutate(ctx, ref, func(o *model.Order) {
		o.SetPaid(paid, now)
	})
}

// SetNote replaces the owner note.
func (r *orderRepository) SetNote(ctx context.Context, ref, note string) (*model.Order, error) {
	return r.mutate(ctx, ref, func(o *model.Order) {
		o.Notes = note
	})
}

// DecideLatestPending applies status to the newest pending order of submitter in one cycle.
func (r *orderRepository) DecideLatestPending(ctx context.Context, submitterID, status string) (*model.Order, error) {
	return r.mutateAt(ctx, func(orders []model.Order) int {
		return indexLatestPending(orders, submitterID)
	}, func(o *model.Order) {
		o.Status = status
	})
}

func (r *orderRepository) mutate(ctx context.Context, ref string, apply func(*model.Order)) (*model.Order, error) {
	return r.mutateAt(ctx, func(orders []model.Order) int {
		return indexByPrefix(orders, ref)
	}, apply)
}

func (r *orderRepository) mutateAt(ctx context.Context, locate func([]model.Order) int, apply func(*model.Order)) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", domainErrors.ErrStorage)
	}

	i := locate(orders)
	if i < 0 {
		return nil, domainErrors.ErrNotFound
	}
	apply(&orders[i])

	if err := r.cache.Put(ctx, orders); err != nil {
		r.logger.Error("persist order update failed", slog.String("order_id", orders[i].ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("persist order: %w", domainErrors.ErrStorage)
	}

	order := orders[i]
	return &order, nil
}

// read degrades to whatever the cache could provide; lookups never fail on storage errors.
func (r *orderRepository) read(ctx context.Context) []model.Order {
	orders, err := r.cache.Get(ctx)
	if err != nil {
		r.logger.Warn("serving orders without a fresh load", slog.String("error", err.Error()))
	}
	return orders
}

func (r *orderRepository) uniqueID(orders []model.Order) string {
	for {
		id := r.newID()
		if !slices.ContainsFunc(orders, func(o model.Order) bool { return o.ID == id }) {
			return id
		}
	}
}

func indexByPrefix(orders []model.Order, prefix string) int {
	if prefix == "" {
		return -1
	}
	return slices.IndexFunc(orders, func(o model.Order) bool {
		return strings.HasPrefix(o.ID, prefix)
	})
}

func indexLatestPending(orders []model.Order, submitterID string) int {
	for i := len(orders) - 1; i >= 0; i-- {
		if orders[i].SubmitterID == submitterID && orders[i].IsPending() {
			return i
		}
	}
	return -1
}
