package lease

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

var (
	one    = decimal.NewFromInt(1)
	two    = decimal.NewFromInt(2)
	twelve = decimal.NewFromInt(12)
)

// =============================================================================
// SCHEDULE GENERATION
// =============================================================================

// GenerateSchedule walks the lease months from rent commencement through
// expiration (inclusive, month granularity) and returns the payment rows.
// An empty schedule is returned when rent commencement is after expiration.
func GenerateSchedule(l Lease, escalations []EscalationRule) []ScheduleEntry {
	start := l.RentStartPeriod()
	end := l.ExpirationPeriod()
	if start.After(end) {
		return nil
	}

	var entries []ScheduleEntry
	rent := l.BaseRent
	monthIdx := 0

	for p := start; !p.After(end); p = p.Next() {
		// Apply escalations effective this month, in list order. Same-month
		// rules compound sequentially.
		for _, rule := range escalations {
			if p.Contains(rule.EffectiveDate) {
				rent = applyEscalation(rent, rule)
			}
		}

		// Base rent, substituting the abatement amount during the abatement
		// window.
		baseAmount := rent
		if monthIdx < l.AbatementMonths {
			baseAmount = l.AbatementAmount
		}
		entries = appendEntry(entries, p, PaymentBaseRent, baseAmount)

		entries = appendEntry(entries, p, PaymentCAM, l.CAMMonthly)
		entries = appendEntry(entries, p, PaymentInsurance, l.InsuranceMonthly)
		entries = appendEntry(entries, p, PaymentPropertyTax, propertyTaxFor(l, p))
		entries = appendEntry(entries, p, PaymentUtilities, l.UtilitiesMonthly)
		entries = appendEntry(entries, p, PaymentOther, l.OtherMonthly)

		monthIdx++
	}
	return entries
}

// applyEscalation returns the rent after one rule. CPI is a defined no-op.
func applyEscalation(rent decimal.Decimal, rule EscalationRule) decimal.Decimal {
	switch rule.Type {
	case EscalationFixedPercentage:
		return fincal.RoundRate(rent.Mul(one.Add(rule.Percentage)))
	case EscalationFixedAmount:
		return fincal.RoundRate(rent.Add(rule.Amount))
	case EscalationCPI:
		return rent
	default:
		return rent
	}
}

// propertyTaxFor returns the property tax posting for the period, per the
// configured frequency: monthly posts annual/12 every month, semi_annual
// posts annual/2 in June and December, annual posts the full amount in
// December.
func propertyTaxFor(l Lease, p fincal.Period) decimal.Decimal {
	if !l.AnnualPropertyTax.IsPositive() {
		return decimal.Zero
	}
	switch l.PropertyTaxFrequency {
	case TaxMonthly:
		return fincal.RoundRate(l.AnnualPropertyTax.Div(twelve))
	case TaxSemiAnnual:
		if p.Month == time.June || p.Month == time.December {
			return fincal.RoundRate(l.AnnualPropertyTax.Div(two))
		}
		return decimal.Zero
	case TaxAnnual:
		if p.Month == time.December {
			return l.AnnualPropertyTax
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// appendEntry emits a row unless the amount rounds to zero.
func appendEntry(entries []ScheduleEntry, p fincal.Period, t PaymentType, amount decimal.Decimal) []ScheduleEntry {
	amount = fincal.RoundRate(amount)
	if amount.IsZero() {
		return entries
	}
	return append(entries, ScheduleEntry{
		Year:   p.Year,
		Month:  p.Month,
		Type:   t,
		Amount: amount,
	})
}
