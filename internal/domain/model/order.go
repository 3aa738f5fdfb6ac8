package model

import (
	"errors"
	"time"
)

// Order statuses set by the intake and decision flows. Owners may set any other free-form status.
const (
	OrderStatusPending  = "Pending"
	OrderStatusAccepted = "Accepted"
	OrderStatusDeclined = "Declined"
)

// PaymentState tracks whether the client has paid.
type PaymentState string

const (
	PaymentUnpaid PaymentState = "unpaid"
	PaymentPaid   PaymentState = "paid"
)

// BudgetCustom is the budget sentinel meaning the price is still to be discussed.
const BudgetCustom = "custom"

var errMalformedOrder = errors.New("malformed order record")

// Order describes a client service request and its tracked lifecycle state.
type Order struct {
	ID               string       `json:"id"`
	Status           string       `json:"status"`
	PaymentState     PaymentState `json:"paymentState"`
	PaidAt           *time.Time   `json:"paidAt"`
	SubmitterName    string       `json:"submitterName"`
	SubmitterID      string       `json:"submitterId"`
	SubjectName      string       `json:"subjectName"`
	SubjectReference string       `json:"subjectReference,omitempty"`
	Category         string       `json:"category"`
	Budget           string       `json:"budget"`
	PaymentMethod    string       `json:"paymentMethod"`
	Details          string       `json:"details"`
	Notes            string       `json:"notes"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// IsPending reports whether the order still awaits a decision.
func (o Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsPaid reports whether the order is marked as paid.
func (o Order) IsPaid() bool {
	return o.PaymentState == PaymentPaid
}

// SetPaid toggles payment state keeping PaidAt consistent with it.
func (o *Order) SetPaid(paid bool, at time.Time) {
	if !paid {
		o.PaymentState = PaymentUnpaid
		o.PaidAt = nil
		return
	}
	if o.IsPaid() && o.PaidAt != nil {
		return
	}
	paidAt := at
	o.PaymentState = PaymentPaid
	o.PaidAt = &paidAt
}

// ShortID returns the leading part of the identifier used in chat replies.
func (o Order) ShortID() string {
	if len(o.ID) <= 8 {
		return o.ID
	}
	return o.ID[:8]
}

// Validate checks the record shape decoded from storage.
func (o Order) Validate() error {
	if o.ID == "" || o.CreatedAt.IsZero() {
		return errMalformedOrder
	}
	switch o.PaymentState {
	case PaymentPaid:
		if o.PaidAt == nil {
			return errMalformedOrder
		}
	case PaymentUnpaid:
		if o.PaidAt != nil {
			return errMalformedOrder
		}
	default:
		return errMalformedOrder
	}
	return nil
}
