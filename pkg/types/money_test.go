package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"25":     "25.00",
		"33.99":  "33.99",
		"10.005": "10.01",
		"0.1":    "0.10",
		"-2.345": "-2.35",
	}
	for in, want := range cases {
		if got := FormatMoney(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatMoney(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	got := LineTotal(decimal.RequireFromString("10.00"), 2)
	if !got.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected 20, got %s", got)
	}
	if !RoundCurrency(decimal.RequireFromString("3.335")).Equal(decimal.RequireFromString("3.34")) {
		t.Fatal("expected half-up rounding to cents")
	}
}
