/*
Package lease generates monthly payment schedules from lease terms.

PURPOSE:
  Walks a lease month by month from rent commencement through expiration,
  applying escalation rules to the running base rent and emitting one row per
  (month, payment type): base rent, CAM, insurance, property tax, utilities
  and other operating costs.

KEY CONCEPTS:
  - Escalation rules: Ordered rent increases applied in list order when their
    effective date falls in the month being walked; several rules effective
    in the same month compound sequentially
  - Abatement: For the first N months of the schedule the base-rent row
    carries the abatement amount instead of the escalated rent
  - Posting frequency: Property tax posts monthly (annual/12), semi-annually
    (annual/2 in June and December) or annually (in December)

  Zero-amount categories are omitted from the output. Emitted amounts are
  rounded to 4 decimal places.

CPI ESCALATION:
  The cpi rule type is accepted but leaves rent unchanged. Index data is not
  wired in yet; the rule is recorded so schedules can be regenerated once it
  is. This is current intended behavior, not a gap in the walk.
*/
package lease

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/fincal"
)

// =============================================================================
// LEASE - Input record
// =============================================================================

// TaxFrequency controls when the annual property tax posts.
type TaxFrequency string

const (
	TaxMonthly    TaxFrequency = "monthly"
	TaxSemiAnnual TaxFrequency = "semi_annual"
	TaxAnnual     TaxFrequency = "annual"
)

// Lease describes one lease's payment terms.
type Lease struct {
	ID       string
	Premises string

	CommencementDate     time.Time
	RentCommencementDate time.Time // zero: defaults to CommencementDate
	ExpirationDate       time.Time

	BaseRent decimal.Decimal

	// Monthly operating costs
	CAMMonthly       decimal.Decimal
	InsuranceMonthly decimal.Decimal
	UtilitiesMonthly decimal.Decimal
	OtherMonthly     decimal.Decimal

	// Property tax
	AnnualPropertyTax    decimal.Decimal
	PropertyTaxFrequency TaxFrequency

	// Rent abatement: the first AbatementMonths rows of the schedule carry
	// AbatementAmount as base rent instead of the escalated rent.
	AbatementMonths int
	AbatementAmount decimal.Decimal
}

// RentStart returns the rent-commencement date, defaulting to commencement.
func (l Lease) RentStart() time.Time {
	if l.RentCommencementDate.IsZero() {
		return l.CommencementDate
	}
	return l.RentCommencementDate
}

// RentStartPeriod returns the first schedule period.
func (l Lease) RentStartPeriod() fincal.Period {
	return fincal.PeriodOf(l.RentStart())
}

// ExpirationPeriod returns the last schedule period.
func (l Lease) ExpirationPeriod() fincal.Period {
	return fincal.PeriodOf(l.ExpirationDate)
}

// =============================================================================
// ESCALATION RULES
// =============================================================================

// EscalationType tags the kind of rent increase.
type EscalationType string

const (
	EscalationFixedPercentage EscalationType = "fixed_percentage"
	EscalationFixedAmount     EscalationType = "fixed_amount"
	EscalationCPI             EscalationType = "cpi"
)

// EscalationRule is a scheduled rent increase effective on a specific date.
// Callers supply rules ordered by effective date; rules effective in the
// same month compound in list order.
type EscalationRule struct {
	Type          EscalationType
	EffectiveDate time.Time
	Percentage    decimal.Decimal // for fixed_percentage (0.03 = 3%)
	Amount        decimal.Decimal // for fixed_amount
	Frequency     string          // informational (e.g. "annual"); the walk applies by effective date
}

// =============================================================================
// PAYMENT SCHEDULE ENTRY - Output row
// =============================================================================

// PaymentType categorizes a schedule row.
type PaymentType string

const (
	PaymentBaseRent    PaymentType = "base_rent"
	PaymentCAM         PaymentType = "cam"
	PaymentInsurance   PaymentType = "insurance"
	PaymentPropertyTax PaymentType = "property_tax"
	PaymentUtilities   PaymentType = "utilities"
	PaymentOther       PaymentType = "other"
)

// ScheduleEntry is one (month, payment type) row. Zero-amount categories are
// never emitted.
type ScheduleEntry struct {
	Year   int
	Month  time.Month
	Type   PaymentType
	Amount decimal.Decimal
}

// Period returns the entry's period.
func (e ScheduleEntry) Period() fincal.Period {
	return fincal.NewPeriod(e.Year, e.Month)
}
