package test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Identifiers shared by tests across packages.
const (
	OwnerID     = "100000000000000001"
	SubmitterID = "123456789012345678"
	ChannelID   = "200000000000000002"
)

// OrderRepositoryStub keeps orders in memory and lets tests override any call.
type OrderRepositoryStub struct {
	CreateFn     func(context.Context, model.Order) (*model.Order, error)
	FindFn       func(context.Context, string) (*model.Order, error)
	ListFn       func(context.Context, string) ([]model.Order, error)
	UpdateFn     func(context.Context, string, string) (*model.Order, error)
	PaymentFn    func(context.Context, string, bool) (*model.Order, error)
	NoteFn       func(context.Context, string, string) (*model.Order, error)
	DecideFn     func(context.Context, string, string) (*model.Order, error)
	Err          error
	Orders       []model.Order
	Now          time.Time
	mu           sync.Mutex
	createdCount int
}

// Create appends draft with a sequential id.
func (s *OrderRepositoryStub) Create(ctx context.Context, draft model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createdCount++
	order := draft
	order.ID = fmt.Sprintf("order%04d", s.createdCount)
	order.Status = model.OrderStatusPending
	order.PaymentState = model.PaymentUnpaid
	order.CreatedAt = s.Now
	s.Orders = append(s.Orders, order)
	return &order, nil
}

// FindByIDPrefix returns the first stored order with the prefix.
func (s *OrderRepositoryStub) FindByIDPrefix(ctx context.Context, prefix string) (*model.Order, error) {
	if s.FindFn != nil {
		return s.FindFn(ctx, prefix)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(prefix); i >= 0 {
		order := s.Orders[i]
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// FindLatestPendingBySubmitter scans stored orders newest first.
func (s *OrderRepositoryStub) FindLatestPendingBySubmitter(ctx context.Context, submitterID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.Orders) - 1; i >= 0; i-- {
		if s.Orders[i].SubmitterID == submitterID && s.Orders[i].IsPending() {
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByStatus filters stored orders.
func (s *OrderRepositoryStub) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		if status == "" || strings.EqualFold(o.Status, status) {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus changes stored status.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, ref, status string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, ref, status)
	}
	return s.mutate(ref, func(o *model.Order) { o.Status = status })
}

// SetPayment toggles stored payment state.
func (s *OrderRepositoryStub) SetPayment(ctx context.Context, ref string, paid bool) (*model.Order, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, ref, paid)
	}
	return s.mutate(ref, func(o *model.Order) { o.SetPaid(paid, s.Now) })
}

// SetNote changes stored note.
func (s *OrderRepositoryStub) SetNote(ctx context.Context, ref, note string) (*model.Order, error) {
	if s.NoteFn != nil {
		return s.NoteFn(ctx, ref, note)
	}
	return s.mutate(ref, func(o *model.Order) { o.Notes = note })
}

// DecideLatestPending sets status on the newest pending order of the submitter.
func (s *OrderRepositoryStub) DecideLatestPending(ctx context.Context, submitterID, status string) (*model.Order, error) {
	if s.DecideFn != nil {
		return s.DecideFn(ctx, submitterID, status)
	}
	order, err := s.FindLatestPendingBySubmitter(ctx, submitterID)
	if err != nil {
		return nil, err
	}
	return s.mutate(order.ID, func(o *model.Order) { o.Status = status })
}

func (s *OrderRepositoryStub) mutate(ref string, apply func(*model.Order)) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(ref)
	if i < 0 {
		return nil, domainErrors.ErrNotFound
	}
	apply(&s.Orders[i])
	order := s.Orders[i]
	return &order, nil
}

func (s *OrderRepositoryStub) index(prefix string) int {
	if prefix == "" {
		return -1
	}
	for i, o := range s.Orders {
		if strings.HasPrefix(o.ID, prefix) {
			return i
		}
	}
	return -1
}

// SettingsRepositoryStub keeps the configuration record in memory.
type SettingsRepositoryStub struct {
	Settings model.Settings
	LoadErr  error
	SaveErr  error
	Saves    int
}

// Load returns the stored record.
func (s *SettingsRepositoryStub) Load(context.Context) (*model.Settings, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	settings := s.Settings
	return &settings, nil
}

// Save replaces the stored record.
func (s *SettingsRepositoryStub) Save(_ context.Context, settings model.Settings) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	s.Settings = settings
	return nil
}
