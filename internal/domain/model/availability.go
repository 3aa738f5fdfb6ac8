package model

import "strings"

// Availability is the owner-controlled intake state shown to clients.
type Availability string

const (
	AvailabilityOpen   Availability = "open"
	AvailabilitySlow   Availability = "slow"
	AvailabilityClosed Availability = "closed"
)

// ParseAvailability accepts any casing of the three known states.
func ParseAvailability(value string) (Availability, bool) {
	switch a := Availability(strings.ToLower(strings.TrimSpace(value))); a {
	case AvailabilityOpen, AvailabilitySlow, AvailabilityClosed:
		return a, true
	default:
		return "", false
	}
}
