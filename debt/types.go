/*
Package debt generates amortization schedules for debt instruments.

PURPOSE:
  Produces a month-by-month principal/interest/balance schedule for a term
  loan (level payment, standard amortization) or a revolving line of credit
  (interest-only on the current draw) from origination through a target
  period.

KEY CONCEPTS:
  - Instrument: Immutable input record for one loan or line of credit
  - PeriodEntry: One output row; entries chain - each entry's beginning
    balance equals the prior entry's ending balance
  - Level payment: When no payment amount is supplied for a term loan, the
    standard annuity payment is computed so the loan fully amortizes over
    its term

FAILURE SEMANTICS:
  No errors. Degenerate inputs (zero amount, zero term) yield an empty
  schedule.
*/
package debt

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

// =============================================================================
// INSTRUMENT - Input record
// =============================================================================

// Type distinguishes amortizing term loans from revolving lines of credit.
type Type string

const (
	TermLoan     Type = "term_loan"
	LineOfCredit Type = "line_of_credit"
)

// Status of a debt instrument. The engine generates schedules regardless of
// status; callers filter.
type Status string

const (
	StatusActive Status = "active"
	StatusPaid   Status = "paid"
	StatusClosed Status = "closed"
)

// Instrument describes one debt instrument. InterestRate is an annual
// decimal fraction (0.06 = 6%).
type Instrument struct {
	ID   string
	Name string
	Type Type

	OriginalAmount decimal.Decimal
	InterestRate   decimal.Decimal
	TermMonths     int
	StartDate      time.Time

	// Optional: overrides the computed level payment for term loans.
	PaymentAmount decimal.Decimal

	// Line of credit fields
	CreditLimit decimal.Decimal
	CurrentDraw decimal.Decimal

	Status Status
}

// StartPeriod returns the origination period.
func (i Instrument) StartPeriod() fincal.Period {
	return fincal.PeriodOf(i.StartDate)
}

// MonthlyRate returns the monthly interest rate (annual / 12, unrounded -
// only monetary amounts are rounded, per the round-at-each-step rule).
func (i Instrument) MonthlyRate() decimal.Decimal {
	return i.InterestRate.Div(decimal.NewFromInt(12))
}

// =============================================================================
// PERIOD ENTRY - Output row
// =============================================================================

// PeriodEntry is one month of an amortization schedule.
type PeriodEntry struct {
	Year  int
	Month time.Month

	BeginningBalance decimal.Decimal
	Payment          decimal.Decimal
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	EndingBalance    decimal.Decimal
}

// Period returns the entry's period.
func (e PeriodEntry) Period() fincal.Period {
	return fincal.NewPeriod(e.Year, e.Month)
}
