package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// OrderStore is the durable orders collection kept as a JSON array.
type OrderStore struct {
	file   *File
	logger *slog.Logger
	now    func() time.Time
}

// NewOrderStore creates store over the given file.
func NewOrderStore(file *File, logger *slog.Logger) *OrderStore {
	return &OrderStore{file: file, logger: logger, now: time.Now}
}

// Read returns the stored orders in insertion order. A missing or malformed
// file yields an empty collection; only I/O failures are returned as errors.
func (s *OrderStore) Read(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.file.Load(ctx, &orders)
	switch {
	case err == nil:
	case errors.Is(err, errMissing):
		return []model.Order{}, nil
	case errors.Is(err, errMalformed):
		s.discard(err)
		return []model.Order{}, nil
	default:
		return nil, err
	}

	for i, o := range orders {
		if err := o.Validate(); err != nil {
			s.discard(fmt.Errorf("record %d: %w", i, err))
			return []model.Order{}, nil
		}
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// Write replaces the stored collection.
func (s *OrderStore) Write(ctx context.Context, orders []model.Order) error {
	if orders == nil {
		orders = []model.Order{}
	}
	return s.file.Save(ctx, orders)
}

func (s *OrderStore) discard(reason error) {
	moved, err := s.file.Quarantine(s.now())
	if err != nil {
		s.logger.Error("orders file unreadable and could not be moved aside",
			slog.String("path", s.file.Path()),
			slog.String("reason", reason.Error()),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Warn("orders file unreadable, starting with empty collection",
		slog.String("path", s.file.Path()),
		slog.String("moved_to", moved),
		slog.String("reason", reason.Error()),
	)
}
