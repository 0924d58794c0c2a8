package depreciation

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

// =============================================================================
// MACRS PERCENTAGE TABLES (IRS half-year convention)
// =============================================================================
// Fixed constants: percent of basis recognized in each tax year. Each table
// sums to 100.

var (
	macrs5Table = percents("20.0", "32.0", "19.2", "11.52", "11.52", "5.76")

	macrs7Table = percents("14.29", "24.49", "17.49", "12.49", "8.93", "8.92", "8.93", "4.46")

	macrs10Table = percents("10.0", "18.0", "14.4", "11.52", "9.22", "7.37", "6.55", "6.55", "6.56", "6.55", "3.28")
)

func percents(values ...string) []decimal.Decimal {
	table := make([]decimal.Decimal, len(values))
	for i, v := range values {
		table[i] = fincal.MustDecimal(v)
	}
	return table
}

// macrsTable returns the percentage table for a MACRS method, or nil for
// non-MACRS methods.
func macrsTable(m TaxMethod) []decimal.Decimal {
	switch m {
	case TaxMACRS5:
		return macrs5Table
	case TaxMACRS7:
		return macrs7Table
	case TaxMACRS10:
		return macrs10Table
	default:
		return nil
	}
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// =============================================================================
// TAX DEPRECIATION
// =============================================================================

// MonthlyTaxDepreciation returns the tax depreciation for a single period,
// dispatching on the asset's tax method. Periods outside the method's
// recognition window yield zero.
func MonthlyTaxDepreciation(a Asset, p fincal.Period) decimal.Decimal {
	basis := a.TaxBasis()
	if !basis.IsPositive() {
		return decimal.Zero
	}

	switch a.TaxMethod {
	case TaxMACRS5, TaxMACRS7, TaxMACRS10:
		return macrsMonthly(basis, macrsTable(a.TaxMethod), a.InServicePeriod(), p)
	case TaxSection179:
		return section179(a, basis, p)
	case TaxBonus100:
		return bonus(a, basis, p, fincal.MustDecimal("1"))
	case TaxBonus80:
		return bonus(a, basis, p, fincal.MustDecimal("0.8"))
	case TaxBonus60:
		return bonus(a, basis, p, fincal.MustDecimal("0.6"))
	case TaxStraightLine:
		return straightLineTax(a, basis, p)
	default:
		return decimal.Zero
	}
}

// macrsMonthly distributes the annual MACRS percentage across the months of
// the corresponding tax year. Tax year N maps to calendar year
// inService.Year + N: in year 0 the annual amount is spread over the months
// remaining from the in-service month through December; in later years it is
// spread evenly over all 12 months. Any (year, month) outside the mapped
// calendar year gets zero.
func macrsMonthly(basis decimal.Decimal, table []decimal.Decimal, inService, p fincal.Period) decimal.Decimal {
	yearIdx := p.Year - inService.Year
	if yearIdx < 0 || yearIdx >= len(table) {
		return decimal.Zero
	}

	annual := fincal.RoundCents(basis.Mul(table[yearIdx]).Div(hundred))

	if yearIdx == 0 {
		if p.Month < inService.Month {
			return decimal.Zero
		}
		monthsRemaining := 13 - int(inService.Month)
		return fincal.RoundCents(annual.Div(decimal.NewFromInt(int64(monthsRemaining))))
	}
	return fincal.RoundCents(annual.Div(twelve))
}

// section179 expenses the configured Section 179 amount (or the full basis
// when unset) in the in-service month only, capped at the tax basis.
func section179(a Asset, basis decimal.Decimal, p fincal.Period) decimal.Decimal {
	if !p.Equal(a.InServicePeriod()) {
		return decimal.Zero
	}
	amount := a.Section179Amount
	if !amount.IsPositive() || amount.GreaterThan(basis) {
		amount = basis
	}
	return fincal.RoundCents(amount)
}

// bonus takes the bonus percentage of basis in the in-service month. For
// partial bonus (80/60), the remaining basis is depreciated on the 5-year
// MACRS table starting the following month.
//
// NOTE: The 5-year fallback applies regardless of the asset's recovery
// class; assets that are actually 7- or 10-year property get the 5-year
// table on the post-bonus remainder.
func bonus(a Asset, basis decimal.Decimal, p fincal.Period, pct decimal.Decimal) decimal.Decimal {
	inService := a.InServicePeriod()
	bonusAmount := fincal.RoundCents(basis.Mul(pct))

	if p.Equal(inService) {
		return bonusAmount
	}
	if pct.GreaterThanOrEqual(fincal.MustDecimal("1")) {
		return decimal.Zero
	}

	remaining := basis.Sub(bonusAmount)
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	return macrsMonthly(remaining, macrs5Table, inService.Next(), p)
}

// straightLineTax spreads the basis evenly over the tax useful life
// (defaulting to 60 months), zero once the life is exhausted.
func straightLineTax(a Asset, basis decimal.Decimal, p fincal.Period) decimal.Decimal {
	life := a.TaxLifeMonths
	if life <= 0 {
		life = 60
	}
	idx := fincal.MonthIndex(a.InServicePeriod(), p)
	if idx < 0 || idx >= life {
		return decimal.Zero
	}
	return fincal.RoundCents(basis.Div(decimal.NewFromInt(int64(life))))
}

// MACRSAnnualPercentages exposes the table for a MACRS method. Reporting
// layers use this for recovery-schedule summaries; returns nil for
// non-MACRS methods.
func MACRSAnnualPercentages(m TaxMethod) []decimal.Decimal {
	table := macrsTable(m)
	if table == nil {
		return nil
	}
	out := make([]decimal.Decimal, len(table))
	copy(out, table)
	return out
}
