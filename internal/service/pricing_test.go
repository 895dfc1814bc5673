package service

import (
	"testing"

	"github.com/rasoi-next/internal/config"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q failed: %v", raw, err)
	}
	return value
}

func TestPricingQuoteBelowThreshold(t *testing.T) {
	policy := DefaultPricingPolicy()
	quote := policy.Quote(mustDecimal(t, "160"))

	if quote.Subtotal.String() != "160.00" {
		t.Fatalf("subtotal want 160.00 got %s", quote.Subtotal.String())
	}
	if quote.DeliveryFee.String() != "40.00" {
		t.Fatalf("delivery fee want 40.00 got %s", quote.DeliveryFee.String())
	}
	if quote.Tax.String() != "8.00" {
		t.Fatalf("tax want 8.00 got %s", quote.Tax.String())
	}
	if quote.Total.String() != "208.00" {
		t.Fatalf("total want 208.00 got %s", quote.Total.String())
	}
	if quote.FreeDeliveryRemaining.String() != "139.00" {
		t.Fatalf("free delivery remaining want 139.00 got %s", quote.FreeDeliveryRemaining.String())
	}
}

func TestPricingQuoteAboveThreshold(t *testing.T) {
	policy := DefaultPricingPolicy()
	quote := policy.Quote(mustDecimal(t, "300"))

	if !quote.DeliveryFee.IsZero() {
		t.Fatalf("delivery fee want 0 got %s", quote.DeliveryFee.String())
	}
	if quote.Tax.String() != "15.00" {
		t.Fatalf("tax want 15.00 got %s", quote.Tax.String())
	}
	if quote.Total.String() != "315.00" {
		t.Fatalf("total want 315.00 got %s", quote.Total.String())
	}
	if !quote.FreeDeliveryRemaining.IsZero() {
		t.Fatalf("free delivery remaining want 0 got %s", quote.FreeDeliveryRemaining.String())
	}
}

func TestPricingDeliveryFeeBoundary(t *testing.T) {
	policy := DefaultPricingPolicy()
	cases := []struct {
		subtotal string
		want     string
	}{
		{"0", "40"},
		{"298.99", "40"},
		{"299", "0"},
		{"299.01", "0"},
	}
	for _, tc := range cases {
		got := policy.DeliveryFee(mustDecimal(t, tc.subtotal))
		if !got.Equal(mustDecimal(t, tc.want)) {
			t.Fatalf("delivery fee for %s want %s got %s", tc.subtotal, tc.want, got)
		}
	}
}

func TestPricingTaxRoundsHalfUp(t *testing.T) {
	policy := DefaultPricingPolicy()
	cases := []struct {
		subtotal string
		want     string
	}{
		{"200", "10"},
		{"0.1", "0.01"},
		{"10.10", "0.51"},
		{"99.99", "5"},
	}
	for _, tc := range cases {
		got := policy.Tax(mustDecimal(t, tc.subtotal))
		if !got.Equal(mustDecimal(t, tc.want)) {
			t.Fatalf("tax for %s want %s got %s", tc.subtotal, tc.want, got)
		}
	}
}

func TestPricingTotalIsSumOfParts(t *testing.T) {
	policy := DefaultPricingPolicy()
	for _, raw := range []string{"1", "57.35", "160", "298.5", "299", "1234.56"} {
		subtotal := mustDecimal(t, raw)
		want := round2(subtotal.Add(policy.DeliveryFee(subtotal)).Add(policy.Tax(subtotal)))
		if got := policy.Total(subtotal); !got.Equal(want) {
			t.Fatalf("total for %s want %s got %s", raw, want, got)
		}
	}
}

func TestNewPricingPolicyFromConfig(t *testing.T) {
	policy, err := NewPricingPolicy(config.PricingConfig{
		Currency:              "inr",
		FreeDeliveryThreshold: "500",
		FlatDeliveryFee:       "25.5",
		TaxRate:               "0.18",
	})
	if err != nil {
		t.Fatalf("build policy failed: %v", err)
	}
	if policy.Currency != "INR" {
		t.Fatalf("currency want INR got %s", policy.Currency)
	}
	if !policy.DeliveryFee(mustDecimal(t, "499")).Equal(mustDecimal(t, "25.5")) {
		t.Fatalf("configured delivery fee not applied")
	}

	if _, err := NewPricingPolicy(config.PricingConfig{TaxRate: "abc"}); err == nil {
		t.Fatalf("invalid tax rate should fail")
	}
	if _, err := NewPricingPolicy(config.PricingConfig{FlatDeliveryFee: "-1"}); err == nil {
		t.Fatalf("negative delivery fee should fail")
	}

	defaults, err := NewPricingPolicy(config.PricingConfig{})
	if err != nil {
		t.Fatalf("empty config should use defaults: %v", err)
	}
	if !defaults.FreeDeliveryThreshold.Equal(decimal.NewFromInt(299)) {
		t.Fatalf("default threshold want 299 got %s", defaults.FreeDeliveryThreshold)
	}
}
