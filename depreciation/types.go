/*
Package depreciation computes book and tax depreciation schedules for fixed
assets.

PURPOSE:
  Turns a depreciable asset's terms into a month-by-month schedule carrying
  both the book track (straight-line or declining-balance) and the tax track
  (MACRS tables, Section 179, bonus depreciation). All functions are pure:
  same asset in, same schedule out, no shared state.

KEY CONCEPTS IN THIS FILE (types.go):
  - Asset: Immutable input record describing one depreciable asset
  - BookMethod / TaxMethod: Closed method tags - each dispatch site switches
    over the full set, so an unknown tag degrades to zero depreciation
  - PeriodEntry: One output row per month

FAILURE SEMANTICS:
  The engine never returns errors. Degenerate inputs (zero life, basis <= 0,
  dates before in-service) yield zero depreciation for the period. An asset
  with nothing to depreciate contributes nothing; it is not a fault.

SEE ALSO:
  - book.go: straight-line and declining-balance book depreciation
  - tax.go: MACRS tables, Section 179 and bonus methods
  - schedule.go: full-schedule generation and disposition gain/loss
*/
package depreciation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

// =============================================================================
// METHOD TAGS
// =============================================================================

// BookMethod selects the book (GAAP) depreciation calculation.
type BookMethod string

const (
	BookNone             BookMethod = "none"
	BookStraightLine     BookMethod = "straight_line"
	BookDecliningBalance BookMethod = "declining_balance"
)

// TaxMethod selects the tax depreciation calculation.
type TaxMethod string

const (
	TaxNone         TaxMethod = "none"
	TaxMACRS5       TaxMethod = "macrs_5"
	TaxMACRS7       TaxMethod = "macrs_7"
	TaxMACRS10      TaxMethod = "macrs_10"
	TaxSection179   TaxMethod = "section_179"
	TaxBonus100     TaxMethod = "bonus_100"
	TaxBonus80      TaxMethod = "bonus_80"
	TaxBonus60      TaxMethod = "bonus_60"
	TaxStraightLine TaxMethod = "straight_line_tax"
)

// =============================================================================
// ASSET - Input record
// =============================================================================

// Asset describes one depreciable asset. Monetary fields are decimal; the
// zero value of any optional field means "unset".
type Asset struct {
	ID          string
	Description string

	AcquisitionCost decimal.Decimal
	InServiceDate   time.Time

	// Book track
	BookMethod       BookMethod
	BookLifeMonths   int
	BookSalvageValue decimal.Decimal

	// Tax track
	TaxMethod        TaxMethod
	TaxCostBasis     decimal.Decimal // unset: defaults to AcquisitionCost
	TaxLifeMonths    int             // unset: defaults to 60 for straight_line_tax
	Section179Amount decimal.Decimal // unset: full basis for section_179
	BonusAmount      decimal.Decimal
}

// TaxBasis returns the tax cost basis, defaulting to the acquisition cost.
func (a Asset) TaxBasis() decimal.Decimal {
	if a.TaxCostBasis.IsPositive() {
		return a.TaxCostBasis
	}
	return a.AcquisitionCost
}

// InServicePeriod returns the period the asset was placed in service.
func (a Asset) InServicePeriod() fincal.Period {
	return fincal.PeriodOf(a.InServiceDate)
}

// depreciableBase is the total book depreciation the asset can take.
func (a Asset) depreciableBase() decimal.Decimal {
	base := a.AcquisitionCost.Sub(a.BookSalvageValue)
	if base.IsNegative() {
		return decimal.Zero
	}
	return base
}

// =============================================================================
// PERIOD ENTRY - Output row
// =============================================================================

// PeriodEntry is one month of a depreciation schedule. Accumulated totals
// carry forward across entries and never exceed the depreciable base (book)
// or the tax basis (tax).
type PeriodEntry struct {
	Year  int
	Month time.Month

	BookDepreciation decimal.Decimal
	BookAccumulated  decimal.Decimal
	BookNetValue     decimal.Decimal

	TaxDepreciation decimal.Decimal
	TaxAccumulated  decimal.Decimal
	TaxNetValue     decimal.Decimal
}

// Period returns the entry's period.
func (e PeriodEntry) Period() fincal.Period {
	return fincal.NewPeriod(e.Year, e.Month)
}
