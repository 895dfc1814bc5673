package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyRoundsHalfUp(t *testing.T) {
	cases := map[string]string{
		"8.005":   "8.01",
		"8.004":   "8.00",
		"14.995":  "15.00",
		"0.125":   "0.13",
		"208":     "208.00",
		"298.994": "298.99",
	}
	for raw, want := range cases {
		m := NewMoneyFromDecimal(decimal.RequireFromString(raw))
		if got := m.String(); got != want {
			t.Fatalf("round %s: want %s got %s", raw, want, got)
		}
	}
}

func TestMoneyJSONAcceptsStringAndNumber(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"80.5","b":299}`), &payload); err != nil {
		t.Fatalf("unmarshal money failed: %v", err)
	}
	if payload.A.String() != "80.50" || payload.B.String() != "299.00" {
		t.Fatalf("unexpected money values: %s %s", payload.A, payload.B)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(out) != `{"a":"80.50","b":"299.00"}` {
		t.Fatalf("unexpected json: %s", out)
	}
}

func TestStringArrayNormalizeSet(t *testing.T) {
	got := StringArray{"Spicy", " veg ", "spicy", ""}.NormalizeSet()
	if len(got) != 2 || got[0] != "spicy" || got[1] != "veg" {
		t.Fatalf("unexpected normalized set: %v", got)
	}
	if !got.Contains("VEG") {
		t.Fatalf("expected set to contain veg")
	}
}
