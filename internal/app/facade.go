package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/polkiloo/orderdesk/internal/adapter/chat"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/usecase"
	"github.com/polkiloo/orderdesk/internal/worker"
)

// Notifier accepts notifications for background delivery.
type Notifier interface {
	Notify(n worker.Notification) bool
}

// OrderDesk exposes the boundary operations consumed by the HTTP and chat surfaces.
type OrderDesk struct {
	orders       *usecase.OrderUseCase
	settings     *usecase.SettingsUseCase
	availability *usecase.AvailabilityRegister
	owner        *usecase.OwnerAuthUseCase
	notifier     Notifier
	logger       *slog.Logger
	now          func() time.Time
}

// NewOrderDesk wires the use cases and the notifier into an OrderDesk.
func NewOrderDesk(
	orders *usecase.OrderUseCase,
	settings *usecase.SettingsUseCase,
	availability *usecase.AvailabilityRegister,
	owner *usecase.OwnerAuthUseCase,
	notifier Notifier,
	logger *slog.Logger,
) *OrderDesk {
	return &OrderDesk{
		orders:       orders,
		settings:     settings,
		availability: availability,
		owner:        owner,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// SubmitOrder records a new order and posts it to the notification channel.
// The order is kept even when the notification cannot be enqueued.
func (f *OrderDesk) SubmitOrder(ctx context.Context, submission model.OrderSubmission) (*model.Order, error) {
	order, err := f.orders.Submit(ctx, submission)
	if err != nil {
		return nil, err
	}

	channelID, err := f.settings.Channel(ctx)
	if err != nil {
		f.logger.Warn("order saved without notification",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return order, nil
	}

	f.notifier.Notify(worker.Notification{
		Target:      worker.TargetChannel,
		RecipientID: channelID,
		OrderID:     order.ID,
		Message:     chat.NewOrderMessage(*order),
	})
	return order, nil
}

// SubmitMessage forwards a contact form message to the owner. No order is created.
func (f *OrderDesk) SubmitMessage(ctx context.Context, msg model.ContactMessage) error {
	if err := usecase.ValidateContact(msg); err != nil {
		return err
	}

	channelID, err := f.settings.Channel(ctx)
	if err != nil {
		return err
	}

	f.notifier.Notify(worker.Notification{
		Target:      worker.TargetChannel,
		RecipientID: channelID,
		Message:     chat.ContactMessage(msg, f.now()),
	})
	return nil
}

// Orders lists orders, optionally filtered by status.
func (f *OrderDesk) Orders(ctx context.Context, status string) ([]model.Order, error) {
	return f.orders.List(ctx, status)
}

// Order finds an order by id prefix.
func (f *OrderDesk) Order(ctx context.Context, ref string) (*model.Order, error) {
	return f.orders.Get(ctx, ref)
}

// UpdateStatus sets the status of the referenced order.
func (f *OrderDesk) UpdateStatus(ctx context.Context, ref, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, ref, status)
}

// SetPayment marks the referenced order paid or unpaid.
func (f *OrderDesk) SetPayment(ctx context.Context, ref string, paid bool) (*model.Order, error) {
	return f.orders.SetPayment(ctx, ref, paid)
}

// SetNote replaces the note on the referenced order.
func (f *OrderDesk) SetNote(ctx context.Context, ref, note string) (*model.Order, error) {
	return f.orders.SetNote(ctx, ref, note)
}

// Channel returns the configured notification channel.
func (f *OrderDesk) Channel(ctx context.Context) (string, error) {
	return f.settings.Channel(ctx)
}

// SetChannel stores the notification channel.
func (f *OrderDesk) SetChannel(ctx context.Context, channelID string) error {
	return f.settings.SetChannel(ctx, channelID)
}

// Availability returns the current service availability.
func (f *OrderDesk) Availability() model.Availability {
	return f.availability.Get()
}

// SetAvailability switches the service availability.
func (f *OrderDesk) SetAvailability(state string) (model.Availability, error) {
	return f.availability.Set(state)
}

// Decide applies the owner's decision to the submitter's latest pending order
// and tells the submitter about it.
func (f *OrderDesk) Decide(ctx context.Context, submitterID string, decision model.Decision) (*model.Order, error) {
	order, err := f.orders.Decide(ctx, submitterID, decision)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			f.logger.Info("decision without pending order",
				slog.String("submitter_id", submitterID),
				slog.String("decision", string(decision)),
			)
		}
		return nil, err
	}

	f.notifier.Notify(worker.Notification{
		Target:      worker.TargetUser,
		RecipientID: order.SubmitterID,
		OrderID:     order.ID,
		Message:     chat.DecisionMessage(*order),
	})
	return order, nil
}

// Login checks the owner password and issues a token.
func (f *OrderDesk) Login(ctx context.Context, password string) (string, error) {
	return f.owner.Login(ctx, password)
}

// Authorize resolves an owner token to the owner id.
func (f *OrderDesk) Authorize(token string) (string, error) {
	return f.owner.Authorize(token)
}

// IsOwner reports whether userID is the configured owner.
func (f *OrderDesk) IsOwner(userID string) bool {
	return f.owner.IsOwner(userID)
}
