package revenue

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

// =============================================================================
// DAILY-PRORATION REVENUE RECOGNITION
// =============================================================================

// Calculate returns the revenue recognition line for one contract in one
// period. The daily rate is total contract value over the inclusive day
// count of the rental term, rounded to 4 places; earned revenue is the rate
// times the day overlap with the period, rounded to cents. A contract whose
// term does not touch the period earns zero, deferring the full billed
// amount.
func Calculate(c Contract, p fincal.Period) Line {
	line := Line{
		ContractID:     c.ContractID,
		Customer:       c.Customer,
		Description:    c.Description,
		BilledAmount:   c.BilledAmount,
		DailyRate:      decimal.Zero,
		EarnedRevenue:  decimal.Zero,
		AccrualAmount:  decimal.Zero,
		DeferralAmount: decimal.Zero,
	}

	totalDays := fincal.DaysInclusive(c.RentalStart, c.RentalEnd)
	if totalDays > 0 {
		line.DailyRate = fincal.RoundRate(c.TotalValue.Div(decimal.NewFromInt(int64(totalDays))))
		line.DaysInPeriod = fincal.OverlapDays(c.RentalStart, c.RentalEnd, p.Start(), p.End())
		line.EarnedRevenue = fincal.RoundCents(line.DailyRate.Mul(decimal.NewFromInt(int64(line.DaysInPeriod))))
	}

	diff := line.EarnedRevenue.Sub(c.BilledAmount)
	switch {
	case diff.IsPositive():
		line.AccrualAmount = diff
	case diff.IsNegative():
		line.DeferralAmount = diff.Neg()
	}
	return line
}

// CalculateAll runs Calculate over a set of contracts for one period.
func CalculateAll(contracts []Contract, p fincal.Period) []Line {
	lines := make([]Line, len(contracts))
	for i, c := range contracts {
		lines[i] = Calculate(c, p)
	}
	return lines
}

// Aggregate sums earned, billed, accrual and deferral across lines. The four
// totals are independent: a deferral on one contract never offsets an
// accrual on another.
func Aggregate(lines []Line) Summary {
	s := Summary{
		TotalEarned:   decimal.Zero,
		TotalBilled:   decimal.Zero,
		TotalAccrual:  decimal.Zero,
		TotalDeferral: decimal.Zero,
	}
	for _, l := range lines {
		s.TotalEarned = s.TotalEarned.Add(l.EarnedRevenue)
		s.TotalBilled = s.TotalBilled.Add(l.BilledAmount)
		s.TotalAccrual = s.TotalAccrual.Add(l.AccrualAmount)
		s.TotalDeferral = s.TotalDeferral.Add(l.DeferralAmount)
	}
	return s
}
