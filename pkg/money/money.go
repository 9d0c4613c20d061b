package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize converts a BRL-formatted amount ("1.234,56") to its canonical
// form ("1234.56"). Input without a comma is treated as already canonical
// and passes through untouched, which disambiguates "1.234,56" from an
// already-normalized "1234.56".
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "") // thousands separators
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return raw
}

// Parse normalizes raw and parses it into a decimal value.
func Parse(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(Normalize(raw))
}

// FormatCanonical renders a value with two decimal places and a dot
// separator, the form used in CSV exports.
func FormatCanonical(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// FormatBRL renders a value with the R$ prefix used in reports and receipts.
func FormatBRL(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}
