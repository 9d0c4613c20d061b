package money_test

import (
	"testing"

	"go-flowcash/pkg/money"

	"github.com/shopspring/decimal"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"150,00", "150.00"},
		{"0,99", "0.99"},
		{"1.000.000,00", "1000000.00"},
		{"1234.56", "1234.56"}, // already canonical, untouched
		{"150", "150"},
		{"  150,00  ", "150.00"},
	}

	for _, c := range cases {
		if got := money.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"1.234,56", "150,00", "1234.56", "150"}
	for _, in := range inputs {
		once := money.Normalize(in)
		twice := money.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := money.Parse("1.234,56")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := decimal.RequireFromString("1234.56"); !got.Equal(want) {
		t.Errorf("Parse = %s, want %s", got, want)
	}

	if _, err := money.Parse("abc"); err == nil {
		t.Error("Parse accepted non-numeric input")
	}
	if _, err := money.Parse(""); err == nil {
		t.Error("Parse accepted empty input")
	}
}

func TestFormat(t *testing.T) {
	v := decimal.RequireFromString("119.5")
	if got := money.FormatCanonical(v); got != "119.50" {
		t.Errorf("FormatCanonical = %q", got)
	}
	if got := money.FormatBRL(v); got != "R$ 119.50" {
		t.Errorf("FormatBRL = %q", got)
	}
	if got := money.FormatBRL(v.Neg()); got != "R$ -119.50" {
		t.Errorf("FormatBRL negative = %q", got)
	}
}
