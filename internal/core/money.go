// Package core holds the bookkeeping domain model and the aggregation engine.
//
// This file contains amount parsing and locale formatting helpers. Amounts are
// shopspring decimals throughout; binary floats never touch monetary values.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered amount to a decimal. It accepts both
// dot (12.34) and comma (12,34) decimal separators and rejects negatives;
// signs belong to the transaction type, not the amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders a decimal in the report locale: thousands separated by
// dots, two decimal places after a comma (1234.5 -> "1.234,50").
func FormatAmount(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

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

// FormatCurrency prefixes FormatAmount with the report currency symbol.
func FormatCurrency(d decimal.Decimal) string {
	return "R$ " + FormatAmount(d)
}
