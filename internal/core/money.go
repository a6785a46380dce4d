// Package core holds the ledger's domain types and the money/date
// parsing rules they share.
//
// Money text follows the pt-BR convention: comma as decimal separator,
// dot as thousands separator.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount turns free-form money text into a decimal value.
//
// Every character except digits, comma and dot is discarded. When both
// separators appear, dots are thousands markers and the comma is the
// decimal separator; a lone comma is a decimal separator. Anything that
// still fails to parse yields zero: user input is corrected
// interactively, so a bad amount is a recoverable default, not an
// error.
//
// Examples:
//
//	ParseAmount("R$ 1.234,56") -> 1234.56
//	ParseAmount("12,5")        -> 12.5
//	ParseAmount("abc")         -> 0
func ParseAmount(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders a value with exactly two fraction digits, comma
// as decimal separator and dot as thousands separator. Round trip:
// ParseAmount(FormatAmount(x)) == x for non-negative x with at most two
// fraction digits.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
