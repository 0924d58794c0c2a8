package depreciation

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

// =============================================================================
// BOOK DEPRECIATION
// =============================================================================

var two = decimal.NewFromInt(2)

// MonthlyBookDepreciation returns the book depreciation for a single period.
// Periods before the in-service month or past the end of the useful life
// yield zero.
func MonthlyBookDepreciation(a Asset, p fincal.Period) decimal.Decimal {
	switch a.BookMethod {
	case BookStraightLine:
		return straightLineBook(a, p)
	case BookDecliningBalance:
		return decliningBalanceBook(a, p)
	default:
		return decimal.Zero
	}
}

func straightLineBook(a Asset, p fincal.Period) decimal.Decimal {
	if a.BookLifeMonths <= 0 {
		return decimal.Zero
	}
	idx := fincal.MonthIndex(a.InServicePeriod(), p)
	if idx < 0 || idx >= a.BookLifeMonths {
		return decimal.Zero
	}
	base := a.depreciableBase()
	if base.IsZero() {
		return decimal.Zero
	}
	return fincal.RoundCents(base.Div(decimal.NewFromInt(int64(a.BookLifeMonths))))
}

// decliningBalanceBook computes double-declining-balance depreciation with an
// automatic switch to straight-line on the remaining basis: each month the
// greater of the DDB amount and the straight-line amount over the remaining
// life is taken. The switch-over point depends on the data, so there is no
// closed form - the recurrence is replayed from the in-service month on
// every call.
func decliningBalanceBook(a Asset, p fincal.Period) decimal.Decimal {
	if a.BookLifeMonths <= 0 {
		return decimal.Zero
	}
	idx := fincal.MonthIndex(a.InServicePeriod(), p)
	if idx < 0 || idx >= a.BookLifeMonths {
		return decimal.Zero
	}
	if a.depreciableBase().IsZero() {
		return decimal.Zero
	}

	life := decimal.NewFromInt(int64(a.BookLifeMonths))
	rate := two.Div(life)
	nbv := a.AcquisitionCost

	for i := 0; i <= idx; i++ {
		remaining := decimal.NewFromInt(int64(a.BookLifeMonths - i))
		ddb := fincal.RoundCents(nbv.Mul(rate))
		sl := fincal.RoundCents(nbv.Sub(a.BookSalvageValue).Div(remaining))

		dep := ddb
		if sl.GreaterThan(ddb) {
			dep = sl
		}
		// Never depreciate below salvage.
		if nbv.Sub(dep).LessThan(a.BookSalvageValue) {
			dep = nbv.Sub(a.BookSalvageValue)
		}
		if dep.IsNegative() {
			dep = decimal.Zero
		}

		if i == idx {
			return dep
		}
		nbv = nbv.Sub(dep)
	}
	return decimal.Zero
}
