package lease_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkit/schedule-engine/fincal"
	"github.com/ledgerkit/schedule-engine/lease"
)

func dec(s string) decimal.Decimal {
	return fincal.MustDecimal(s)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// entryFor finds the single entry of a type in a period, or nil.
func entryFor(entries []lease.ScheduleEntry, p fincal.Period, t lease.PaymentType) *lease.ScheduleEntry {
	for i := range entries {
		if entries[i].Period().Equal(p) && entries[i].Type == t {
			return &entries[i]
		}
	}
	return nil
}

func baseLease() lease.Lease {
	return lease.Lease{
		ID:               "lease-1",
		CommencementDate: date(2024, time.January, 1),
		ExpirationDate:   date(2025, time.December, 31),
		BaseRent:         dec("5000"),
	}
}

// =============================================================================
// ESCALATIONS
// =============================================================================

func TestSchedule_FixedPercentageEscalation(t *testing.T) {
	// GIVEN: base rent 5000, one 3% escalation effective 2025-01
	// THEN: 2024-12 rent = 5000.00, 2025-01 rent = 5150.00, and the increase
	//       is not reapplied in later months

	l := baseLease()
	rules := []lease.EscalationRule{{
		Type:          lease.EscalationFixedPercentage,
		EffectiveDate: date(2025, time.January, 1),
		Percentage:    dec("0.03"),
	}}

	entries := lease.GenerateSchedule(l, rules)

	dec24 := entryFor(entries, fincal.NewPeriod(2024, time.December), lease.PaymentBaseRent)
	require.NotNil(t, dec24)
	assert.True(t, dec24.Amount.Equal(dec("5000")), "2024-12 rent %s", dec24.Amount)

	jan25 := entryFor(entries, fincal.NewPeriod(2025, time.January), lease.PaymentBaseRent)
	require.NotNil(t, jan25)
	assert.True(t, jan25.Amount.Equal(dec("5150")), "2025-01 rent %s", jan25.Amount)

	jun25 := entryFor(entries, fincal.NewPeriod(2025, time.June), lease.PaymentBaseRent)
	require.NotNil(t, jun25)
	assert.True(t, jun25.Amount.Equal(dec("5150")), "2025-06 rent %s (compounding must not reapply)", jun25.Amount)
}

func TestSchedule_SameMonthEscalationsCompoundInOrder(t *testing.T) {
	l := baseLease()
	rules := []lease.EscalationRule{
		{Type: lease.EscalationFixedPercentage, EffectiveDate: date(2024, time.June, 1), Percentage: dec("0.10")},
		{Type: lease.EscalationFixedAmount, EffectiveDate: date(2024, time.June, 15), Amount: dec("250")},
	}

	entries := lease.GenerateSchedule(l, rules)
	jun := entryFor(entries, fincal.NewPeriod(2024, time.June), lease.PaymentBaseRent)
	require.NotNil(t, jun)
	// 5000 * 1.10 = 5500, + 250 = 5750
	assert.True(t, jun.Amount.Equal(dec("5750")), "got %s", jun.Amount)
}

func TestSchedule_CPIEscalationIsNoOp(t *testing.T) {
	l := baseLease()
	rules := []lease.EscalationRule{{
		Type:          lease.EscalationCPI,
		EffectiveDate: date(2024, time.June, 1),
		Percentage:    dec("0.05"), // recorded but not applied
	}}

	entries := lease.GenerateSchedule(l, rules)
	jun := entryFor(entries, fincal.NewPeriod(2024, time.June), lease.PaymentBaseRent)
	require.NotNil(t, jun)
	assert.True(t, jun.Amount.Equal(dec("5000")), "cpi must leave rent unchanged, got %s", jun.Amount)
}

// =============================================================================
// ABATEMENT
// =============================================================================

func TestSchedule_AbatementSubstitutesBaseRent(t *testing.T) {
	l := baseLease()
	l.AbatementMonths = 3
	l.AbatementAmount = dec("1000")

	entries := lease.GenerateSchedule(l, nil)

	for i, p := 0, fincal.NewPeriod(2024, time.January); i < 3; i, p = i+1, p.Next() {
		e := entryFor(entries, p, lease.PaymentBaseRent)
		require.NotNil(t, e, "%v", p)
		assert.True(t, e.Amount.Equal(dec("1000")), "%v abated rent %s", p, e.Amount)
	}
	apr := entryFor(entries, fincal.NewPeriod(2024, time.April), lease.PaymentBaseRent)
	require.NotNil(t, apr)
	assert.True(t, apr.Amount.Equal(dec("5000")), "first unabated month %s", apr.Amount)
}

func TestSchedule_FullAbatementOmitsBaseRentRow(t *testing.T) {
	// A zero abatement amount means no base-rent row at all for those months
	// (zero-amount categories are omitted).
	l := baseLease()
	l.AbatementMonths = 2

	entries := lease.GenerateSchedule(l, nil)
	assert.Nil(t, entryFor(entries, fincal.NewPeriod(2024, time.January), lease.PaymentBaseRent))
	assert.NotNil(t, entryFor(entries, fincal.NewPeriod(2024, time.March), lease.PaymentBaseRent))
}

// =============================================================================
// OPERATING COSTS AND PROPERTY TAX
// =============================================================================

func TestSchedule_ZeroCategoriesOmitted(t *testing.T) {
	l := baseLease()
	l.CAMMonthly = dec("800")
	// insurance, utilities, other, tax all zero

	entries := lease.GenerateSchedule(l, nil)
	jan := fincal.NewPeriod(2024, time.January)

	assert.NotNil(t, entryFor(entries, jan, lease.PaymentCAM))
	assert.Nil(t, entryFor(entries, jan, lease.PaymentInsurance))
	assert.Nil(t, entryFor(entries, jan, lease.PaymentUtilities))
	assert.Nil(t, entryFor(entries, jan, lease.PaymentOther))
	assert.Nil(t, entryFor(entries, jan, lease.PaymentPropertyTax))
}

func TestSchedule_PropertyTaxMonthly(t *testing.T) {
	l := baseLease()
	l.AnnualPropertyTax = dec("24000")
	l.PropertyTaxFrequency = lease.TaxMonthly

	entries := lease.GenerateSchedule(l, nil)
	for p := fincal.NewPeriod(2024, time.January); !p.After(fincal.NewPeriod(2024, time.December)); p = p.Next() {
		e := entryFor(entries, p, lease.PaymentPropertyTax)
		require.NotNil(t, e, "%v", p)
		assert.True(t, e.Amount.Equal(dec("2000")), "%v tax %s", p, e.Amount)
	}
}

func TestSchedule_PropertyTaxSemiAnnual(t *testing.T) {
	l := baseLease()
	l.AnnualPropertyTax = dec("24000")
	l.PropertyTaxFrequency = lease.TaxSemiAnnual

	entries := lease.GenerateSchedule(l, nil)

	jun := entryFor(entries, fincal.NewPeriod(2024, time.June), lease.PaymentPropertyTax)
	require.NotNil(t, jun)
	assert.True(t, jun.Amount.Equal(dec("12000")), "June posting %s", jun.Amount)

	dec24 := entryFor(entries, fincal.NewPeriod(2024, time.December), lease.PaymentPropertyTax)
	require.NotNil(t, dec24)
	assert.True(t, dec24.Amount.Equal(dec("12000")), "December posting %s", dec24.Amount)

	assert.Nil(t, entryFor(entries, fincal.NewPeriod(2024, time.March), lease.PaymentPropertyTax))
}

func TestSchedule_PropertyTaxAnnual(t *testing.T) {
	l := baseLease()
	l.AnnualPropertyTax = dec("24000")
	l.PropertyTaxFrequency = lease.TaxAnnual

	entries := lease.GenerateSchedule(l, nil)

	dec24 := entryFor(entries, fincal.NewPeriod(2024, time.December), lease.PaymentPropertyTax)
	require.NotNil(t, dec24)
	assert.True(t, dec24.Amount.Equal(dec("24000")), "December posting %s", dec24.Amount)

	assert.Nil(t, entryFor(entries, fincal.NewPeriod(2024, time.June), lease.PaymentPropertyTax))
}

// =============================================================================
// BOUNDARIES
// =============================================================================

func TestSchedule_RentCommencementAfterExpiration(t *testing.T) {
	l := baseLease()
	l.RentCommencementDate = date(2026, time.June, 1)
	assert.Empty(t, lease.GenerateSchedule(l, nil))
}

func TestSchedule_RentCommencementDefaultsToCommencement(t *testing.T) {
	l := baseLease()
	entries := lease.GenerateSchedule(l, nil)
	require.NotEmpty(t, entries)
	assert.Equal(t, 2024, entries[0].Year)
	assert.Equal(t, time.January, entries[0].Month)
}

func TestSchedule_LateRentCommencementShiftsStart(t *testing.T) {
	l := baseLease()
	l.RentCommencementDate = date(2024, time.April, 1)

	entries := lease.GenerateSchedule(l, nil)
	require.NotEmpty(t, entries)
	assert.Nil(t, entryFor(entries, fincal.NewPeriod(2024, time.March), lease.PaymentBaseRent))
	assert.NotNil(t, entryFor(entries, fincal.NewPeriod(2024, time.April), lease.PaymentBaseRent))
}
