package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Token patterns for the Yuh statement layout. Amounts are matched after
// stripping grouping separators; the year range keeps random dotted numbers
// from being taken for transaction dates.
var (
	datePattern    = regexp.MustCompile(`^[0-3][0-9]\.[0-1][0-9]\.202[3-9]$`)
	fixedPattern   = regexp.MustCompile(`^[-+]?[0-9]+\.[0-9][0-9]$`)
	integerPattern = regexp.MustCompile(`^[0-9]+$`)
)

// stripSeparators removes thousands separators (apostrophe or comma) so a
// printed amount like "1'234.56" matches fixedPattern.
func stripSeparators(s string) string {
	s = strings.ReplaceAll(s, "'", "")
	return strings.ReplaceAll(s, ",", "")
}

// parseFixed converts a separator-stripped fixed-point string to an exact
// two-decimal value. Callers must only pass strings already matched by
// fixedPattern; anything else is an error.
func parseFixed(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !fixedPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("not a fixed-point amount: %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// cents returns the value as integer cents, rounded. All reconciliation
// arithmetic compares cents so floating-point drift can never flip a
// credit/debit decision.
func cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// roundCents rounds a value to two decimals.
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// centsToDecimal converts integer cents back to a two-decimal value.
func centsToDecimal(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
