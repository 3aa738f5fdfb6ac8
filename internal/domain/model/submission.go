package model

// OrderSubmission carries the web form fields of a new order.
type OrderSubmission struct {
	SubmitterName    string
	SubmitterID      string
	SubjectName      string
	SubjectReference string
	Category         string
	Budget           string
	PaymentMethod    string
	Details          string
}

// ContactMessage is a contact-form submission that does not create an order.
type ContactMessage struct {
	SenderName string
	SenderID   string
	Message    string
}

// Decision is the owner's answer to a pending order.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// Status returns the order status a decision leads to.
func (d Decision) Status() (string, bool) {
	switch d {
	case DecisionAccept:
		return OrderStatusAccepted, true
	case DecisionDecline:
		return OrderStatusDeclined, true
	default:
		return "", false
	}
}
