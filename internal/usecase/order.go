package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Submit validates a web form submission and records it as a pending order.
func (u *OrderUseCase) Submit(ctx context.Context, submission model.OrderSubmission) (*model.Order, error) {
	submission = normalizeSubmission(submission)
	if err := ValidateSubmission(submission); err != nil {
		return nil, err
	}

	return u.orders.Create(ctx, model.Order{
		SubmitterName:    submission.SubmitterName,
		SubmitterID:      submission.SubmitterID,
		SubjectName:      submission.SubjectName,
		SubjectReference: submission.SubjectReference,
		Category:         submission.Category,
		Budget:           submission.Budget,
		PaymentMethod:    submission.PaymentMethod,
		Details:          submission.Details,
	})
}

// Get resolves an order by full id or id prefix.
func (u *OrderUseCase) Get(ctx context.Context, ref string) (*model.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domainErrors.NewMissingField("orderId")
	}
	return u.orders.FindByIDPrefix(ctx, ref)
}

// List returns orders, optionally filtered by status.
func (u *OrderUseCase) List(ctx context.Context, status string) ([]model.Order, error) {
	return u.orders.ListByStatus(ctx, status)
}

// UpdateStatus sets a free-form status on the referenced order.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, ref, status string) (*model.Order, error) {
	ref, status = strings.TrimSpace(ref), strings.TrimSpace(status)
	if ref == "" {
		return nil, domainErrors.NewMissingField("orderId")
	}
	if status == "" {
		return nil, domainErrors.NewMissingField("status")
	}
	return u.orders.UpdateStatus(ctx, ref, status)
}

// SetPayment marks the referenced order as paid or unpaid.
func (u *OrderUseCase) SetPayment(ctx context.Context, ref string, paid bool) (*model.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domainErrors.NewMissingField("orderId")
	}
	return u.orders.SetPayment(ctx, ref, paid)
}

// SetNote replaces the owner note of the referenced order. An empty note clears it.
func (u *OrderUseCase) SetNote(ctx context.Context, ref, note string) (*model.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domainErrors.NewMissingField("orderId")
	}
	return u.orders.SetNote(ctx, ref, strings.TrimSpace(note))
}

// Decide applies an accept or decline decision to the newest pending order of the submitter.
func (u *OrderUseCase) Decide(ctx context.Context, submitterID string, decision model.Decision) (*model.Order, error) {
	status, ok := decision.Status()
	if !ok {
		return nil, domainErrors.ErrInvalidDecision
	}
	if !ValidateSnowflake(submitterID) {
		return nil, domainErrors.NewInvalidIdentifier("submitterId")
	}
	return u.orders.DecideLatestPending(ctx, submitterID, status)
}
