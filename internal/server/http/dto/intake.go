package dto

import "github.com/polkiloo/orderdesk/internal/domain/model"

// OrderRequest is the public order form.
type OrderRequest struct {
	SubmitterName    string `json:"submitterName"`
	SubmitterID      string `json:"submitterId"`
	SubjectName      string `json:"subjectName"`
	SubjectReference string `json:"subjectReference"`
	Category         string `json:"category"`
	Budget           string `json:"budget"`
	PaymentMethod    string `json:"paymentMethod"`
	Details          string `json:"details"`
}

// Submission converts the form into its domain shape.
func (r OrderRequest) Submission() model.OrderSubmission {
	return model.OrderSubmission{
		SubmitterName:    r.SubmitterName,
		SubmitterID:      r.SubmitterID,
		SubjectName:      r.SubjectName,
		SubjectReference: r.SubjectReference,
		Category:         r.Category,
		Budget:           r.Budget,
		PaymentMethod:    r.PaymentMethod,
		Details:          r.Details,
	}
}

// OrderCreatedResponse acknowledges an accepted order form.
type OrderCreatedResponse struct {
	OrderID string `json:"orderId"`
}

// ContactRequest is the public contact form.
type ContactRequest struct {
	SenderName string `json:"senderName"`
	SenderID   string `json:"senderId"`
	Message    string `json:"message"`
}

// ContactMessage converts the form into its domain shape.
func (r ContactRequest) ContactMessage() model.ContactMessage {
	return model.ContactMessage{SenderName: r.SenderName, SenderID: r.SenderID, Message: r.Message}
}

// AckResponse acknowledges an asynchronous submission.
type AckResponse struct {
	Status string `json:"status"`
}

// AvailabilityResponse reports the intake state.
type AvailabilityResponse struct {
	State string `json:"state"`
}

// ErrorResponse describes a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}
