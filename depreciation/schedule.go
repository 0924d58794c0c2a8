package depreciation

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

// =============================================================================
// SCHEDULE GENERATION
// =============================================================================

// GenerateSchedule produces one PeriodEntry per month from the in-service
// period through the target period, inclusive. Book accumulation is capped
// at (cost - salvage); tax accumulation is capped at the tax basis. A target
// before the in-service period yields an empty schedule.
func GenerateSchedule(a Asset, through fincal.Period) []PeriodEntry {
	start := a.InServicePeriod()
	if through.Before(start) {
		return nil
	}

	bookCap := a.depreciableBase()
	taxCap := a.TaxBasis()
	if taxCap.IsNegative() {
		taxCap = decimal.Zero
	}

	bookAccum := decimal.Zero
	taxAccum := decimal.Zero

	var entries []PeriodEntry
	for p := start; !p.After(through); p = p.Next() {
		book := capAt(MonthlyBookDepreciation(a, p), bookCap.Sub(bookAccum))
		tax := capAt(MonthlyTaxDepreciation(a, p), taxCap.Sub(taxAccum))

		bookAccum = bookAccum.Add(book)
		taxAccum = taxAccum.Add(tax)

		entries = append(entries, PeriodEntry{
			Year:  p.Year,
			Month: p.Month,

			BookDepreciation: book,
			BookAccumulated:  bookAccum,
			BookNetValue:     fincal.RoundCents(a.AcquisitionCost.Sub(bookAccum)),

			TaxDepreciation: tax,
			TaxAccumulated:  taxAccum,
			TaxNetValue:     fincal.RoundCents(a.TaxBasis().Sub(taxAccum)),
		})
	}
	return entries
}

// capAt limits a period amount to the remaining headroom, flooring at zero.
func capAt(amount, remaining decimal.Decimal) decimal.Decimal {
	if remaining.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(remaining) {
		return remaining
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// =============================================================================
// DISPOSITION
// =============================================================================

// GainLoss carries the book and tax gain (positive) or loss (negative) on a
// disposition.
type GainLoss struct {
	Book decimal.Decimal
	Tax  decimal.Decimal
}

// DispositionGainLoss computes the gain or loss on sale: sale price minus
// net book value, separately for the book and tax tracks, given the
// accumulated depreciation at disposal.
func DispositionGainLoss(a Asset, accumBook, accumTax, salePrice decimal.Decimal) GainLoss {
	bookNBV := a.AcquisitionCost.Sub(accumBook)
	taxNBV := a.TaxBasis().Sub(accumTax)
	return GainLoss{
		Book: fincal.RoundCents(salePrice.Sub(bookNBV)),
		Tax:  fincal.RoundCents(salePrice.Sub(taxNBV)),
	}
}
