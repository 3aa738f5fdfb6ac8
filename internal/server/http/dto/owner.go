package dto

import (
	"time"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// OrderResponse is the full order record shown to the owner.
type OrderResponse struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	PaymentState     string     `json:"paymentState"`
	PaidAt           *time.Time `json:"paidAt"`
	SubmitterName    string     `json:"submitterName"`
	SubmitterID      string     `json:"submitterId"`
	SubjectName      string     `json:"subjectName"`
	SubjectReference string     `json:"subjectReference,omitempty"`
	Category         string     `json:"category"`
	Budget           string     `json:"budget"`
	PaymentMethod    string     `json:"paymentMethod"`
	Details          string     `json:"details"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		Status:           o.Status,
		PaymentState:     string(o.PaymentState),
		PaidAt:           o.PaidAt,
		SubmitterName:    o.SubmitterName,
		SubmitterID:      o.SubmitterID,
		SubjectName:      o.SubjectName,
		SubjectReference: o.SubjectReference,
		Category:         o.Category,
		Budget:           o.Budget,
		PaymentMethod:    o.PaymentMethod,
		Details:          o.Details,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt,
	}
}

type StatusRequest struct {
	Status string `json:"status"`
}

// PaymentRequest requires an explicit paid flag.
type PaymentRequest struct {
	Paid *bool `json:"paid"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

type ChannelRequest struct {
	ChannelID string `json:"channelId"`
}

type ChannelResponse struct {
	ChannelID string `json:"channelId"`
}

type AvailabilityRequest struct {
	State string `json:"state"`
}
