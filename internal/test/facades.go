package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// SampleOrder returns a pending order suitable for handler responses.
func SampleOrder(id string) model.Order {
	return model.Order{
		ID:            id,
		Status:        model.OrderStatusPending,
		PaymentState:  model.PaymentUnpaid,
		SubmitterName: "Client",
		SubmitterID:   SubmitterID,
		SubjectName:   "Guild bot",
		Category:      "discord-bot",
		Budget:        "50",
		PaymentMethod: "paypal",
		Details:       "details",
		CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// DecisionCall stores information about Decide invocations.
type DecisionCall struct {
	SubmitterID string
	Decision    model.Decision
}

// OrderDeskFacadeStub provides controllable behaviour for every handler facade.
type OrderDeskFacadeStub struct {
	OwnerFacadeStub

	SubmitOrderFn     func(context.Context, model.OrderSubmission) (*model.Order, error)
	SubmitMessageFn   func(context.Context, model.ContactMessage) error
	OrdersFn          func(context.Context, string) ([]model.Order, error)
	OrderFn           func(context.Context, string) (*model.Order, error)
	UpdateStatusFn    func(context.Context, string, string) (*model.Order, error)
	SetPaymentFn      func(context.Context, string, bool) (*model.Order, error)
	SetNoteFn         func(context.Context, string, string) (*model.Order, error)
	ChannelFn         func(context.Context) (string, error)
	SetChannelFn      func(context.Context, string) error
	SetAvailabilityFn func(string) (model.Availability, error)
	DecideFn          func(context.Context, string, model.Decision) (*model.Order, error)
	State             model.Availability

	mu        sync.Mutex
	Decisions []DecisionCall
}

// SubmitOrder delegates to provided function or returns a new pending order.
func (s *OrderDeskFacadeStub) SubmitOrder(ctx context.Context, submission model.OrderSubmission) (*model.Order, error) {
	if s.SubmitOrderFn != nil {
		return s.SubmitOrderFn(ctx, submission)
	}
	order := SampleOrder("order0001")
	order.SubmitterID = submission.SubmitterID
	return &order, nil
}

// SubmitMessage delegates to provided function or accepts the message.
func (s *OrderDeskFacadeStub) SubmitMessage(ctx context.Context, msg model.ContactMessage) error {
	if s.SubmitMessageFn != nil {
		return s.SubmitMessageFn(ctx, msg)
	}
	return nil
}

// Availability returns State, open when unset.
func (s *OrderDeskFacadeStub) Availability() model.Availability {
	if s.State == "" {
		return model.AvailabilityOpen
	}
	return s.State
}

// SetAvailability delegates to provided function or parses state.
func (s *OrderDeskFacadeStub) SetAvailability(state string) (model.Availability, error) {
	if s.SetAvailabilityFn != nil {
		return s.SetAvailabilityFn(state)
	}
	parsed, ok := model.ParseAvailability(state)
	if !ok {
		return "", domainErrors.ErrInvalidAvailability
	}
	s.State = parsed
	return parsed, nil
}

// Orders returns predefined orders.
func (s *OrderDeskFacadeStub) Orders(ctx context.Context, status string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status)
	}
	return []model.Order{SampleOrder("order0001")}, nil
}

// Order returns the sample order for any reference.
func (s *OrderDeskFacadeStub) Order(ctx context.Context, ref string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, ref)
	}
	order := SampleOrder(ref)
	return &order, nil
}

// UpdateStatus returns the sample order with the new status.
func (s *OrderDeskFacadeStub) UpdateStatus(ctx context.Context, ref, status string) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, ref, status)
	}
	order := SampleOrder(ref)
	order.Status = status
	return &order, nil
}

// SetPayment returns the sample order with the payment applied.
func (s *OrderDeskFacadeStub) SetPayment(ctx context.Context, ref string, paid bool) (*model.Order, error) {
	if s.SetPaymentFn != nil {
		return s.SetPaymentFn(ctx, ref, paid)
	}
	order := SampleOrder(ref)
	order.SetPaid(paid, order.CreatedAt)
	return &order, nil
}

// SetNote returns the sample order with the note applied.
func (s *OrderDeskFacadeStub) SetNote(ctx context.Context, ref, note string) (*model.Order, error) {
	if s.SetNoteFn != nil {
		return s.SetNoteFn(ctx, ref, note)
	}
	order := SampleOrder(ref)
	order.Notes = note
	return &order, nil
}

// Channel returns ChannelID by default.
func (s *OrderDeskFacadeStub) Channel(ctx context.Context) (string, error) {
	if s.ChannelFn != nil {
		return s.ChannelFn(ctx)
	}
	return ChannelID, nil
}

// SetChannel delegates to provided function or accepts the channel.
func (s *OrderDeskFacadeStub) SetChannel(ctx context.Context, channelID string) error {
	if s.SetChannelFn != nil {
		return s.SetChannelFn(ctx, channelID)
	}
	return nil
}

// Decide records the call and returns the decided sample order.
func (s *OrderDeskFacadeStub) Decide(ctx context.Context, submitterID string, decision model.Decision) (*model.Order, error) {
	s.mu.Lock()
	s.Decisions = append(s.Decisions, DecisionCall{SubmitterID: submitterID, Decision: decision})
	s.mu.Unlock()

	if s.DecideFn != nil {
		return s.DecideFn(ctx, submitterID, decision)
	}
	order := SampleOrder("order0001")
	order.SubmitterID = submitterID
	order.Status, _ = decision.Status()
	return &order, nil
}

// DecisionCalls returns a snapshot of recorded decisions.
func (s *OrderDeskFacadeStub) DecisionCalls() []DecisionCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DecisionCall(nil), s.Decisions...)
}
