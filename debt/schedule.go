package debt

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

var one = decimal.NewFromInt(1)

// =============================================================================
// LEVEL PAYMENT
// =============================================================================

// LevelPayment returns the standard annuity payment that fully amortizes
// principal over termMonths at the given monthly rate, rounded to cents.
// A zero rate degrades to principal / termMonths.
func LevelPayment(principal, monthlyRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	if monthlyRate.IsZero() {
		return fincal.RoundCents(principal.Div(n))
	}

	// P * r * (1+r)^n / ((1+r)^n - 1)
	compound := one.Add(monthlyRate).Pow(n)
	numerator := principal.Mul(monthlyRate).Mul(compound)
	denominator := compound.Sub(one)
	return fincal.RoundCents(numerator.Div(denominator))
}

// =============================================================================
// SCHEDULE GENERATION
// =============================================================================

// GenerateSchedule produces the amortization schedule from origination
// through the target period, inclusive, never extending past the term.
// Entries chain: each entry's beginning balance equals the prior entry's
// ending balance, and the final term-loan entry truncates the payment to
// retire the remaining balance exactly.
func GenerateSchedule(inst Instrument, through fincal.Period) []PeriodEntry {
	switch inst.Type {
	case LineOfCredit:
		return lineOfCreditSchedule(inst, through)
	default:
		return termLoanSchedule(inst, through)
	}
}

func termLoanSchedule(inst Instrument, through fincal.Period) []PeriodEntry {
	if !inst.OriginalAmount.IsPositive() || inst.TermMonths <= 0 {
		return nil
	}
	start := inst.StartPeriod()
	months := fincal.MonthsBetween(start, through)
	if months <= 0 {
		return nil
	}
	if months > inst.TermMonths {
		months = inst.TermMonths
	}

	rate := inst.MonthlyRate()
	payment := inst.PaymentAmount
	if !payment.IsPositive() {
		payment = LevelPayment(inst.OriginalAmount, rate, inst.TermMonths)
	}

	entries := make([]PeriodEntry, 0, months)
	balance := inst.OriginalAmount
	p := start

	for k := 1; k <= months; k++ {
		interest := fincal.RoundCents(balance.Mul(rate))
		principal := fincal.RoundCents(payment.Sub(interest))
		pay := payment

		// Final payment retires whatever remains, absorbing rounding drift.
		if k == inst.TermMonths || principal.GreaterThan(balance) {
			principal = balance
			pay = fincal.RoundCents(principal.Add(interest))
		}
		if principal.IsNegative() {
			principal = decimal.Zero
		}

		ending := balance.Sub(principal)
		entries = append(entries, PeriodEntry{
			Year:             p.Year,
			Month:            p.Month,
			BeginningBalance: balance,
			Payment:          pay,
			Principal:        principal,
			Interest:         interest,
			EndingBalance:    ending,
		})

		balance = ending
		p = p.Next()
		if balance.IsZero() {
			break
		}
	}
	return entries
}

// lineOfCreditSchedule emits interest-only entries on the current draw.
// There is no amortizing principal track: the balance carries unchanged.
func lineOfCreditSchedule(inst Instrument, through fincal.Period) []PeriodEntry {
	draw := inst.CurrentDraw
	if !draw.IsPositive() {
		draw = inst.OriginalAmount
	}
	if !draw.IsPositive() {
		return nil
	}
	start := inst.StartPeriod()
	months := fincal.MonthsBetween(start, through)
	if months <= 0 {
		return nil
	}
	if inst.TermMonths > 0 && months > inst.TermMonths {
		months = inst.TermMonths
	}

	rate := inst.MonthlyRate()
	entries := make([]PeriodEntry, 0, months)
	p := start

	for k := 0; k < months; k++ {
		interest := fincal.RoundCents(draw.Mul(rate))
		entries = append(entries, PeriodEntry{
			Year:             p.Year,
			Month:            p.Month,
			BeginningBalance: draw,
			Payment:          interest,
			Principal:        decimal.Zero,
			Interest:         interest,
			EndingBalance:    draw,
		})
		p = p.Next()
	}
	return entries
}
