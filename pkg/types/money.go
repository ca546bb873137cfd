package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseDollarsToCents converts a dollar amount string such as "14.38" into
// integer cents, rounding half away from zero at the cent.
func ParseDollarsToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return DollarsToCents(d), nil
}

// DollarsToCents converts a decimal dollar amount to integer cents.
func DollarsToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FloatDollarsToCents converts a JSON float dollar amount to cents without
// binary rounding drift (e.g. 20.38 -> 2038, not 2037).
func FloatDollarsToCents(f float64) int64 {
	return DollarsToCents(decimal.NewFromFloat(f))
}

// CentsToDollars converts integer cents to an exact decimal dollar amount.
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents renders cents as a dollar string, e.g. 1438 -> "$14.38".
func FormatCents(cents int64) string {
	return "$" + CentsToDollars(cents).StringFixed(2)
}
