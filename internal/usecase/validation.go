package usecase

import (
	"regexp"
	"strings"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

var snowflakePattern = regexp.MustCompile(`^\d{17,20}$`)

// ValidateSnowflake reports whether id looks like a chat platform identifier.
func ValidateSnowflake(id string) bool {
	return snowflakePattern.MatchString(id)
}

// ValidateSubmission checks required order fields and the submitter id format.
// Unknown categories are accepted.
func ValidateSubmission(s model.OrderSubmission) error {
	required := []struct {
		field string
		value string
	}{
		{"submitterName", s.SubmitterName},
		{"submitterId", s.SubmitterID},
		{"subjectName", s.SubjectName},
		{"category", s.Category},
		{"budget", s.Budget},
		{"paymentMethod", s.PaymentMethod},
		{"details", s.Details},
	}
	if err := checkRequired(required); err != nil {
		return err
	}
	if !ValidateSnowflake(s.SubmitterID) {
		return domainErrors.NewInvalidIdentifier("submitterId")
	}
	return nil
}

// ValidateContact checks a contact form message.
func ValidateContact(m model.ContactMessage) error {
	required := []struct {
		field string
		value string
	}{
		{"senderName", m.SenderName},
		{"senderId", m.SenderID},
		{"message", m.Message},
	}
	if err := checkRequired(required); err != nil {
		return err
	}
	if !ValidateSnowflake(m.SenderID) {
		return domainErrors.NewInvalidIdentifier("senderId")
	}
	return nil
}

func checkRequired(fields []struct {
	field string
	value string
}) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domainErrors.NewMissingField(f.field)
		}
	}
	return nil
}

func normalizeSubmission(s model.OrderSubmission) model.OrderSubmission {
	s.SubmitterName = strings.TrimSpace(s.SubmitterName)
	s.SubmitterID = strings.TrimSpace(s.SubmitterID)
	s.SubjectName = strings.TrimSpace(s.SubjectName)
	s.SubjectReference = strings.TrimSpace(s.SubjectReference)
	s.Category = strings.TrimSpace(s.Category)
	s.Budget = strings.TrimSpace(s.Budget)
	s.PaymentMethod = strings.TrimSpace(s.PaymentMethod)
	s.Details = strings.TrimSpace(s.Details)
	return s
}
