package model

import (
	"testing"
	"time"
)

func TestSetPaidKeepsPaidAtConsistent(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var o Order
	o.SetPaid(true, now)
	if !o.IsPaid() || o.PaidAt == nil || !o.PaidAt.Equal(now) {
		t.Fatalf("expected paid order with paidAt %v, got %+v", now, o)
	}

	o.SetPaid(true, now.Add(time.Hour))
	if !o.PaidAt.Equal(now) {
		t.Fatalf("expected repeated payment to keep original paidAt, got %v", o.PaidAt)
	}

	o.SetPaid(false, now)
	if o.PaymentState != PaymentUnpaid || o.PaidAt != nil {
		t.Fatalf("expected unpaid order without paidAt, got %+v", o)
	}
}

func TestOrderValidate(t *testing.T) {
	paidAt := time.Now()
	cases := []struct {
		name  string
		order Order
		ok    bool
	}{
		{"valid unpaid", Order{ID: "a", CreatedAt: paidAt, PaymentState: PaymentUnpaid}, true},
		{"valid paid", Order{ID: "a", CreatedAt: paidAt, PaymentState: PaymentPaid, PaidAt: &paidAt}, true},
		{"missing id", Order{CreatedAt: paidAt, PaymentState: PaymentUnpaid}, false},
		{"missing created at", Order{ID: "a", PaymentState: PaymentUnpaid}, false},
		{"paid without paidAt", Order{ID: "a", CreatedAt: paidAt, PaymentState: PaymentPaid}, false},
		{"unpaid with paidAt", Order{ID: "a", CreatedAt: paidAt, PaymentState: PaymentUnpaid, PaidAt: &paidAt}, false},
		{"unknown payment state", Order{ID: "a", CreatedAt: paidAt, PaymentState: "maybe"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.order.Validate()
			if (err == nil) != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, err)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	if got := (Order{ID: "0123456789abcdef"}).ShortID(); got != "01234567" {
		t.Fatalf("unexpected short id %q", got)
	}
	if got := (Order{ID: "abc"}).ShortID(); got != "abc" {
		t.Fatalf("unexpected short id %q", got)
	}
}

func TestParseAvailability(t *testing.T) {
	cases := []struct {
		in   string
		want Availability
		ok   bool
	}{
		{"open", AvailabilityOpen, true},
		{" SLOW ", AvailabilitySlow, true},
		{"Closed", AvailabilityClosed, true},
		{"busy", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseAvailability(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseAvailability(%q) = %q, %v", tc.in, got, ok)
		}
	}
}

func TestLookupCategory(t *testing.T) {
	if c := LookupCategory("discord-bot"); c.Key != "discord-bot" {
		t.Fatalf("expected discord-bot, got %+v", c)
	}
	if c := LookupCategory("Discord Bot"); c.Key != "discord-bot" {
		t.Fatalf("expected label lookup to resolve, got %+v", c)
	}
	if c := LookupCategory("Automation Script"); c.Key != "automation" {
		t.Fatalf("expected label lookup to resolve, got %+v", c)
	}
	if c := LookupCategory("Unknown Category"); c != FallbackCategory {
		t.Fatalf("expected fallback, got %+v", c)
	}
	if len(Categories()) != 5 {
		t.Fatalf("expected five catalogue entries, got %d", len(Categories()))
	}
}

func TestDecisionStatus(t *testing.T) {
	if s, ok := DecisionAccept.Status(); !ok || s != OrderStatusAccepted {
		t.Fatalf("unexpected accept status %q", s)
	}
	if s, ok := DecisionDecline.Status(); !ok || s != OrderStatusDeclined {
		t.Fatalf("unexpected decline status %q", s)
	}
	if _, ok := Decision("maybe").Status(); ok {
		t.Fatal("expected unknown decision to be rejected")
	}
}

func TestSettingsChannelID(t *testing.T) {
	if _, ok := (Settings{}).ChannelID(); ok {
		t.Fatal("expected empty settings to have no channel")
	}
	empty := ""
	if _, ok := (Settings{NotifyChannelID: &empty}).ChannelID(); ok {
		t.Fatal("expected blank channel to be treated as unset")
	}
	id := "123456789012345678"
	if got, ok := (Settings{NotifyChannelID: &id}).ChannelID(); !ok || got != id {
		t.Fatalf("unexpected channel %q", got)
	}
}
