package depreciation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/depreciation"
	"github.com/ledgerkit/schedule-engine/fincal"
)

// =============================================================================
// MACRS TABLES
// =============================================================================

func TestMACRSTables_SumToOneHundred(t *testing.T) {
	for _, method := range []depreciation.TaxMethod{
		depreciation.TaxMACRS5,
		depreciation.TaxMACRS7,
		depreciation.TaxMACRS10,
	} {
		table := depreciation.MACRSAnnualPercentages(method)
		if table == nil {
			t.Fatalf("%s: no table", method)
		}
		sum := decimal.Zero
		for _, pct := range table {
			sum = sum.Add(pct)
		}
		if !sum.Equal(dec("100")) {
			t.Errorf("%s: percentages sum to %s, want 100", method, sum)
		}
	}
}

func TestMACRSAnnualPercentages_NonMACRSMethod(t *testing.T) {
	if got := depreciation.MACRSAnnualPercentages(depreciation.TaxSection179); got != nil {
		t.Errorf("expected nil table, got %v", got)
	}
}

// =============================================================================
// MACRS MONTHLY DISTRIBUTION
// =============================================================================

func TestMACRS5_JanuaryInService_FullYearSpread(t *testing.T) {
	// GIVEN: basis 12000, macrs_5, in service January 2024
	// THEN: year 0 annual is 20% = 2400, spread over 12 months = 200/month;
	//       year 1 annual is 32% = 3840, spread over 12 months = 320/month

	asset := depreciation.Asset{
		AcquisitionCost: dec("12000"),
		InServiceDate:   date(2024, time.January, 1),
		TaxMethod:       depreciation.TaxMACRS5,
	}

	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.March)), "200", "year 0")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2025, time.August)), "320", "year 1")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2030, time.January)), "0", "past table")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2023, time.December)), "0", "before in-service")
}

func TestMACRS5_MidYearInService_PartialFirstYear(t *testing.T) {
	// GIVEN: basis 10000, macrs_5, in service July 2024
	// THEN: year 0 annual 2000 spreads over July..December (6 months) = 333.33;
	//       months before July in 2024 get zero

	asset := depreciation.Asset{
		AcquisitionCost: dec("10000"),
		InServiceDate:   date(2024, time.July, 10),
		TaxMethod:       depreciation.TaxMACRS5,
	}

	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.July)), "333.33", "first month")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.December)), "333.33", "last month of year 0")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.June)), "0", "before in-service month")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2025, time.February)), "266.67", "year 1, 3200/12")
}

func TestMACRS_FullSpanTotalEqualsBasis(t *testing.T) {
	// Summed across the whole recovery span the schedule must return the
	// basis; the schedule cap absorbs monthly rounding drift.
	asset := depreciation.Asset{
		AcquisitionCost: dec("10000"),
		InServiceDate:   date(2024, time.July, 1),
		TaxMethod:       depreciation.TaxMACRS7,
	}

	entries := depreciation.GenerateSchedule(asset, fincal.NewPeriod(2032, time.December))
	final := entries[len(entries)-1]
	diff := final.TaxAccumulated.Sub(dec("10000")).Abs()
	if diff.GreaterThan(dec("1.10")) { // a cent per period of drift
		t.Errorf("tax accumulated %s not within tolerance of basis 10000", final.TaxAccumulated)
	}
	if final.TaxAccumulated.GreaterThan(dec("10000")) {
		t.Errorf("tax accumulated %s exceeds basis", final.TaxAccumulated)
	}
}

// =============================================================================
// SECTION 179 AND BONUS
// =============================================================================

func TestSection179_FullBasisInServiceMonthOnly(t *testing.T) {
	asset := depreciation.Asset{
		AcquisitionCost: dec("8000"),
		InServiceDate:   date(2024, time.May, 1),
		TaxMethod:       depreciation.TaxSection179,
	}

	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.May)), "8000", "in-service month")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.June)), "0", "following month")
}

func TestSection179_ConfiguredAmountCappedAtBasis(t *testing.T) {
	asset := depreciation.Asset{
		AcquisitionCost:  dec("8000"),
		InServiceDate:    date(2024, time.May, 1),
		TaxMethod:        depreciation.TaxSection179,
		Section179Amount: dec("5000"),
	}
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.May)), "5000", "configured amount")

	asset.Section179Amount = dec("20000")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.May)), "8000", "capped at basis")
}

func TestBonus100_EverythingUpFront(t *testing.T) {
	asset := depreciation.Asset{
		AcquisitionCost: dec("15000"),
		InServiceDate:   date(2024, time.February, 1),
		TaxMethod:       depreciation.TaxBonus100,
	}
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.February)), "15000", "in-service month")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.March)), "0", "nothing left")
}

func TestBonus80_RemainderOnFiveYearMACRS(t *testing.T) {
	// GIVEN: basis 10000, bonus_80, in service March 2024
	// THEN: March 2024 takes 8000; the remaining 2000 runs 5-year MACRS
	//       starting April 2024 (year 0 spread April..December = 9 months)

	asset := depreciation.Asset{
		AcquisitionCost: dec("10000"),
		InServiceDate:   date(2024, time.March, 1),
		TaxMethod:       depreciation.TaxBonus80,
	}

	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.March)), "8000", "bonus month")
	// 20% of 2000 = 400 over 9 months = 44.44
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.April)), "44.44", "first MACRS month")
	// 32% of 2000 = 640 over 12 months = 53.33
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2025, time.June)), "53.33", "year 1")
}

func TestBonus60_DecemberInService_MACRSStartsNextYear(t *testing.T) {
	asset := depreciation.Asset{
		AcquisitionCost: dec("10000"),
		InServiceDate:   date(2024, time.December, 1),
		TaxMethod:       depreciation.TaxBonus60,
	}

	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.December)), "6000", "bonus month")
	// Remaining 4000, MACRS start rolls to January 2025: 20% = 800 over 12 months
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2025, time.January)), "66.67", "MACRS first month")
}

// =============================================================================
// STRAIGHT-LINE TAX
// =============================================================================

func TestStraightLineTax_DefaultsToSixtyMonths(t *testing.T) {
	asset := depreciation.Asset{
		AcquisitionCost: dec("6000"),
		InServiceDate:   date(2024, time.January, 1),
		TaxMethod:       depreciation.TaxStraightLine,
	}

	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.January)), "100", "6000/60")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2028, time.December)), "100", "month 59")
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2029, time.January)), "0", "life exhausted")
}

func TestStraightLineTax_ExplicitLifeAndBasis(t *testing.T) {
	asset := depreciation.Asset{
		AcquisitionCost: dec("9999"),
		TaxCostBasis:    dec("2400"),
		InServiceDate:   date(2024, time.January, 1),
		TaxMethod:       depreciation.TaxStraightLine,
		TaxLifeMonths:   24,
	}
	assertDecimal(t, depreciation.MonthlyTaxDepreciation(asset, fincal.NewPeriod(2024, time.June)), "100", "2400/24 uses tax basis")
}
