package repository

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	FindByIDPrefix(ctx context.Context, prefix string) (*model.Order, error)
	FindLatestPendingBySubmitter(ctx context.Context, submitterID string) (*model.Order, error)
	ListByStatus(ctx context.Context, status string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, ref, status string) (*model.Order, error)
	SetPayment(ctx context.Context, ref string, paid bool) (*model.Order, error)
	SetNote(ctx context.Context, ref, note string) (*model.Order, error)
	DecideLatestPending(ctx context.Context, submitterID, status string) (*model.Order, error)
}
