package fincal

import "github.com/shopspring/decimal"

// =============================================================================
// MONETARY ROUNDING - Applied at every computation boundary
// =============================================================================
// Every derived monetary quantity is rounded the moment it is computed, not
// at output formatting time. Deferring rounding produces cent-level drift
// against the ledgers this system reconciles with.

// RoundCents rounds a monetary amount to 2 decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// RoundRate rounds a per-day or per-unit rate to 4 decimal places.
func RoundRate(d decimal.Decimal) decimal.Decimal { return d.Round(4) }

// MustDecimal parses a decimal string, returning zero on failure. Used for
// constant tables and test fixtures where the input is known-good.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
