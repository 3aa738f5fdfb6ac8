package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

const (
	maxFieldLength = 1024
	customBudget   = "Custom (to be discussed)"

	decisionPrefix = "order"
	colorAccepted  = 0x2ECC71
	colorDeclined  = 0xE74C3C
	colorContact   = 0x5865F2
)

// NewOrderMessage renders the owner notification for a new order with accept and decline buttons.
func NewOrderMessage(order model.Order) Message {
	category := model.LookupCategory(order.Category)

	subject := order.SubjectName
	if order.SubjectReference != "" {
		subject = fmt.Sprintf("%s\n%s", order.SubjectName, order.SubjectReference)
	}

	fields := []EmbedField{
		{Name: "Client", Value: fmt.Sprintf("%s (<@%s>)", order.SubmitterName, order.SubmitterID), Inline: true},
		{Name: "Subject", Value: truncate(subject, maxFieldLength), Inline: true},
		{Name: "Category", Value: categoryLabel(category, order.Category), Inline: true},
		{Name: "Budget", Value: FormatBudget(order.Budget), Inline: true},
		{Name: "Payment", Value: order.PaymentMethod, Inline: true},
		{Name: "Details", Value: truncate(order.Details, maxFieldLength)},
	}

	return Message{
		Embeds: []Embed{{
			Title:     fmt.Sprintf("%s New order: %s", category.Emoji, category.Label),
			Color:     category.Color,
			Fields:    fields,
			Timestamp: order.CreatedAt.UTC().Format(time.RFC3339),
			Footer:    &EmbedFooter{Text: "Order " + order.ShortID()},
		}},
		Components: []ActionRow{newActionRow(
			Button{Style: ButtonSuccess, Label: "Accept", CustomID: DecisionID(model.DecisionAccept, order.SubmitterID)},
			Button{Style: ButtonDanger, Label: "Decline", CustomID: DecisionID(model.DecisionDecline, order.SubmitterID)},
		)},
	}
}

// ContactMessage renders a contact form message for the owner.
func ContactMessage(msg model.ContactMessage, at time.Time) Message {
	return Message{
		Embeds: []Embed{{
			Title:       "✉️ New message",
			Description: truncate(msg.Message, 4096),
			Color:       colorContact,
			Fields: []EmbedField{
				{Name: "From", Value: fmt.Sprintf("%s (<@%s>)", msg.SenderName, msg.SenderID)},
			},
			Timestamp: at.UTC().Format(time.RFC3339),
		}},
	}
}

// DecisionMessage renders the direct message sent to a submitter once the owner decides.
func DecisionMessage(order model.Order) Message {
	embed := Embed{
		Fields: []EmbedField{
			{Name: "Order", Value: order.ShortID(), Inline: true},
			{Name: "Subject", Value: order.SubjectName, Inline: true},
		},
	}
	switch order.Status {
	case model.OrderStatusAccepted:
		embed.Title = "✅ Your order was accepted"
		embed.Description = "Thanks! We will contact you shortly to discuss the details."
		embed.Color = colorAccepted
	default:
		embed.Title = "❌ Your order was declined"
		embed.Description = "Unfortunately we cannot take this order right now."
		embed.Color = colorDeclined
	}
	return Message{Embeds: []Embed{embed}}
}

// OrderSummary renders a one-line description used in list replies.
func OrderSummary(order model.Order) string {
	category := model.LookupCategory(order.Category)
	return fmt.Sprintf("`%s` %s %s | %s | %s | %s",
		order.ShortID(), category.Emoji, order.SubjectName, order.Status, paymentLabel(order), FormatBudget(order.Budget))
}

// OrderDetails renders the full order for a single-order reply.
func OrderDetails(order model.Order) string {
	category := model.LookupCategory(order.Category)

	var b strings.Builder
	fmt.Fprintf(&b, "**Order** `%s`\n", order.ID)
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	fmt.Fprintf(&b, "Payment: %s\n", paymentLabel(order))
	fmt.Fprintf(&b, "Client: %s (<@%s>)\n", order.SubmitterName, order.SubmitterID)
	fmt.Fprintf(&b, "Subject: %s", order.SubjectName)
	if order.SubjectReference != "" {
		fmt.Fprintf(&b, " (%s)", order.SubjectReference)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Category: %s\n", categoryLabel(category, order.Category))
	fmt.Fprintf(&b, "Budget: %s\n", FormatBudget(order.Budget))
	fmt.Fprintf(&b, "Payment method: %s\n", order.PaymentMethod)
	fmt.Fprintf(&b, "Created: %s\n", order.CreatedAt.UTC().Format(time.RFC1123))
	fmt.Fprintf(&b, "Details: %s", truncate(order.Details, maxFieldLength))
	if order.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", order.Notes)
	}
	return b.String()
}

// FormatBudget renders the budget sentinel for custom pricing.
func FormatBudget(budget string) string {
	if strings.EqualFold(strings.TrimSpace(budget), model.BudgetCustom) {
		return customBudget
	}
	return budget
}

// DecisionID builds the button custom id carrying decision and submitter.
func DecisionID(decision model.Decision, submitterID string) string {
	return strings.Join([]string{decisionPrefix, string(decision), submitterID}, ":")
}

// ParseDecisionID reverses DecisionID.
func ParseDecisionID(customID string) (model.Decision, string, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != decisionPrefix || parts[2] == "" {
		return "", "", false
	}
	decision := model.Decision(parts[1])
	if _, ok := decision.Status(); !ok {
		return "", "", false
	}
	return decision, parts[2], true
}

func categoryLabel(category model.Category, raw string) string {
	if category.Key == model.FallbackCategory.Key && raw != "" {
		return fmt.Sprintf("%s %s", category.Emoji, raw)
	}
	return fmt.Sprintf("%s %s", category.Emoji, category.Label)
}

func paymentLabel(order model.Order) string {
	if order.IsPaid() && order.PaidAt != nil {
		return "paid " + order.PaidAt.UTC().Format("2006-01-02")
	}
	return string(model.PaymentUnpaid)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}
