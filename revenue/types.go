/*
Package revenue computes earned revenue, accruals and deferrals for rental
contracts.

PURPOSE:
  For one rental contract and one accounting period: derive the contract's
  daily rate, count the day overlap between the contract term and the period,
  recognize the earned revenue for those days, and classify the difference
  against the billed amount as an accrual (earned > billed) or a deferral
  (billed > earned). Exactly one of the two is non-zero, or both are zero
  when earned equals billed.

  A contract with no day overlap earns nothing, so its full billed amount is
  a deferral. Aggregation across contracts sums earned, billed, accrual and
  deferral independently - accruals and deferrals are never netted against
  each other.
*/
package revenue

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONTRACT - Input record
// =============================================================================

// Contract is one rental contract row with its billed amount for the period
// under review.
type Contract struct {
	ContractID  string
	Customer    string
	Description string

	RentalStart time.Time
	RentalEnd   time.Time

	TotalValue   decimal.Decimal
	BilledAmount decimal.Decimal
}

// =============================================================================
// CALCULATED LINE - Output row
// =============================================================================

// Line is the per-contract revenue recognition result for a period.
type Line struct {
	ContractID  string
	Customer    string
	Description string

	DailyRate      decimal.Decimal // 4 decimal places
	DaysInPeriod   int
	EarnedRevenue  decimal.Decimal
	BilledAmount   decimal.Decimal
	AccrualAmount  decimal.Decimal
	DeferralAmount decimal.Decimal
}

// Summary carries independent (non-netted) totals across contracts.
type Summary struct {
	TotalEarned   decimal.Decimal
	TotalBilled   decimal.Decimal
	TotalAccrual  decimal.Decimal
	TotalDeferral decimal.Decimal
}
