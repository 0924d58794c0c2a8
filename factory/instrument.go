/*
Package factory provides JSON to Go instrument conversion.

PURPOSE:
  Converts JSON instrument definitions into the engine input records
  (depreciation.Asset, debt.Instrument, lease.Lease, revenue.Contract).
  This is the validation boundary: the engines themselves never error, so
  method tags and dates are checked here, when an instrument enters the
  system (API create, import pipeline, database load).

JSON SCHEMA (asset):
  {
    "id": "asset-001",
    "description": "Forklift",
    "acquisition_cost": 42000,
    "in_service_date": "2024-03-01",
    "book_method": "straight_line",
    "book_life_months": 84,
    "book_salvage_value": 2000,
    "tax_method": "macrs_7"
  }

USAGE:
  f := factory.NewInstrumentFactory()
  asset, err := f.ParseAsset(jsonStr)

SEE ALSO:
  - depreciation/types.go, debt/types.go, lease/types.go, revenue/types.go
  - store/sqlite: persists the JSON configs this package parses
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/debt"
	"github.com/ledgerkit/schedule-engine/depreciation"
	"github.com/ledgerkit/schedule-engine/lease"
	"github.com/ledgerkit/schedule-engine/revenue"
)

const dateLayout = "2006-01-02"

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// AssetJSON is the JSON representation of a depreciable asset.
type AssetJSON struct {
	ID               string  `json:"id"`
	Description      string  `json:"description,omitempty"`
	AcquisitionCost  float64 `json:"acquisition_cost"`
	InServiceDate    string  `json:"in_service_date"`
	BookMethod       string  `json:"book_method"`
	BookLifeMonths   int     `json:"book_life_months,omitempty"`
	BookSalvageValue float64 `json:"book_salvage_value,omitempty"`
	TaxMethod        string  `json:"tax_method"`
	TaxCostBasis     float64 `json:"tax_cost_basis,omitempty"`
	TaxLifeMonths    int     `json:"tax_life_months,omitempty"`
	Section179Amount float64 `json:"section_179_amount,omitempty"`
	BonusAmount      float64 `json:"bonus_amount,omitempty"`
}

// DebtJSON is the JSON representation of a debt instrument.
type DebtJSON struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	Type           string  `json:"type"`
	OriginalAmount float64 `json:"original_amount"`
	InterestRate   float64 `json:"interest_rate"`
	TermMonths     int     `json:"term_months"`
	StartDate      string  `json:"start_date"`
	PaymentAmount  float64 `json:"payment_amount,omitempty"`
	CreditLimit    float64 `json:"credit_limit,omitempty"`
	CurrentDraw    float64 `json:"current_draw,omitempty"`
	Status         string  `json:"status,omitempty"`
}

// LeaseJSON is the JSON representation of a lease and its escalation rules.
type LeaseJSON struct {
	ID                   string           `json:"id"`
	Premises             string           `json:"premises,omitempty"`
	CommencementDate     string           `json:"commencement_date"`
	RentCommencementDate string           `json:"rent_commencement_date,omitempty"`
	ExpirationDate       string           `json:"expiration_date"`
	BaseRent             float64          `json:"base_rent"`
	CAMMonthly           float64          `json:"cam_monthly,omitempty"`
	InsuranceMonthly     float64          `json:"insurance_monthly,omitempty"`
	UtilitiesMonthly     float64          `json:"utilities_monthly,omitempty"`
	OtherMonthly         float64          `json:"other_monthly,omitempty"`
	AnnualPropertyTax    float64          `json:"annual_property_tax,omitempty"`
	PropertyTaxFrequency string           `json:"property_tax_frequency,omitempty"`
	AbatementMonths      int              `json:"abatement_months,omitempty"`
	AbatementAmount      float64          `json:"abatement_amount,omitempty"`
	Escalations          []EscalationJSON `json:"escalations,omitempty"`
}

// EscalationJSON is one rent escalation rule.
type EscalationJSON struct {
	Type          string  `json:"type"`
	EffectiveDate string  `json:"effective_date"`
	Percentage    float64 `json:"percentage,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Frequency     string  `json:"frequency,omitempty"`
}

// ContractJSON is the JSON representation of a rental contract.
type ContractJSON struct {
	ContractID   string  `json:"contract_id"`
	Customer     string  `json:"customer,omitempty"`
	Description  string  `json:"description,omitempty"`
	RentalStart  string  `json:"rental_start"`
	RentalEnd    string  `json:"rental_end"`
	TotalValue   float64 `json:"total_value"`
	BilledAmount float64 `json:"billed_amount,omitempty"`
}

// =============================================================================
// INSTRUMENT FACTORY
// =============================================================================

// InstrumentFactory converts JSON instrument configs to engine inputs.
type InstrumentFactory struct{}

// NewInstrumentFactory creates a new instrument factory.
func NewInstrumentFactory() *InstrumentFactory {
	return &InstrumentFactory{}
}

// ParseAsset parses a JSON string into a depreciation.Asset.
func (f *InstrumentFactory) ParseAsset(jsonStr string) (depreciation.Asset, error) {
	var aj AssetJSON
	if err := json.Unmarshal([]byte(jsonStr), &aj); err != nil {
		return depreciation.Asset{}, fmt.Errorf("failed to parse asset JSON: %w", err)
	}
	return f.AssetFromJSON(aj)
}

// AssetFromJSON converts AssetJSON to a depreciation.Asset, validating the
// method tags and dates.
func (f *InstrumentFactory) AssetFromJSON(aj AssetJSON) (depreciation.Asset, error) {
	bookMethod, err := parseBookMethod(aj.BookMethod)
	if err != nil {
		return depreciation.Asset{}, err
	}
	taxMethod, err := parseTaxMethod(aj.TaxMethod)
	if err != nil {
		return depreciation.Asset{}, err
	}
	inService, err := parseDate(aj.InServiceDate, "in_service_date")
	if err != nil {
		return depreciation.Asset{}, err
	}

	return depreciation.Asset{
		ID:               aj.ID,
		Description:      aj.Description,
		AcquisitionCost:  decimal.NewFromFloat(aj.AcquisitionCost),
		InServiceDate:    inService,
		BookMethod:       bookMethod,
		BookLifeMonths:   aj.BookLifeMonths,
		BookSalvageValue: decimal.NewFromFloat(aj.BookSalvageValue),
		TaxMethod:        taxMethod,
		TaxCostBasis:     decimal.NewFromFloat(aj.TaxCostBasis),
		TaxLifeMonths:    aj.TaxLifeMonths,
		Section179Amount: decimal.NewFromFloat(aj.Section179Amount),
		BonusAmount:      decimal.NewFromFloat(aj.BonusAmount),
	}, nil
}

// ParseDebt parses a JSON string into a debt.Instrument.
func (f *InstrumentFactory) ParseDebt(jsonStr string) (debt.Instrument, error) {
	var dj DebtJSON
	if err := json.Unmarshal([]byte(jsonStr), &dj); err != nil {
		return debt.Instrument{}, fmt.Errorf("failed to parse debt JSON: %w", err)
	}
	return f.DebtFromJSON(dj)
}

// DebtFromJSON converts DebtJSON to a debt.Instrument.
func (f *InstrumentFactory) DebtFromJSON(dj DebtJSON) (debt.Instrument, error) {
	debtType, err := parseDebtType(dj.Type)
	if err != nil {
		return debt.Instrument{}, err
	}
	start, err := parseDate(dj.StartDate, "start_date")
	if err != nil {
		return debt.Instrument{}, err
	}

	status := debt.Status(dj.Status)
	if dj.Status == "" {
		status = debt.StatusActive
	}

	return debt.Instrument{
		ID:             dj.ID,
		Name:           dj.Name,
		Type:           debtType,
		OriginalAmount: decimal.NewFromFloat(dj.OriginalAmount),
		InterestRate:   decimal.NewFromFloat(dj.InterestRate),
		TermMonths:     dj.TermMonths,
		StartDate:      start,
		PaymentAmount:  decimal.NewFromFloat(dj.PaymentAmount),
		CreditLimit:    decimal.NewFromFloat(dj.CreditLimit),
		CurrentDraw:    decimal.NewFromFloat(dj.CurrentDraw),
		Status:         status,
	}, nil
}

// ParseLease parses a JSON string into a lease.Lease and its escalation
// rules, ordered as supplied.
func (f *InstrumentFactory) ParseLease(jsonStr string) (lease.Lease, []lease.EscalationRule, error) {
	var lj LeaseJSON
	if err := json.Unmarshal([]byte(jsonStr), &lj); err != nil {
		return lease.Lease{}, nil, fmt.Errorf("failed to parse lease JSON: %w", err)
	}
	return f.LeaseFromJSON(lj)
}

// LeaseFromJSON converts LeaseJSON to a lease.Lease and escalation rules.
func (f *InstrumentFactory) LeaseFromJSON(lj LeaseJSON) (lease.Lease, []lease.EscalationRule, error) {
	commencement, err := parseDate(lj.CommencementDate, "commencement_date")
	if err != nil {
		return lease.Lease{}, nil, err
	}
	expiration, err := parseDate(lj.ExpirationDate, "expiration_date")
	if err != nil {
		return lease.Lease{}, nil, err
	}

	var rentCommencement time.Time
	if lj.RentCommencementDate != "" {
		rentCommencement, err = parseDate(lj.RentCommencementDate, "rent_commencement_date")
		if err != nil {
			return lease.Lease{}, nil, err
		}
	}

	taxFreq, err := parseTaxFrequency(lj.PropertyTaxFrequency)
	if err != nil {
		return lease.Lease{}, nil, err
	}

	l := lease.Lease{
		ID:                   lj.ID,
		Premises:             lj.Premises,
		CommencementDate:     commencement,
		RentCommencementDate: rentCommencement,
		ExpirationDate:       expiration,
		BaseRent:             decimal.NewFromFloat(lj.BaseRent),
		CAMMonthly:           decimal.NewFromFloat(lj.CAMMonthly),
		InsuranceMonthly:     decimal.NewFromFloat(lj.InsuranceMonthly),
		UtilitiesMonthly:     decimal.NewFromFloat(lj.UtilitiesMonthly),
		OtherMonthly:         decimal.NewFromFloat(lj.OtherMonthly),
		AnnualPropertyTax:    decimal.NewFromFloat(lj.AnnualPropertyTax),
		PropertyTaxFrequency: taxFreq,
		AbatementMonths:      lj.AbatementMonths,
		AbatementAmount:      decimal.NewFromFloat(lj.AbatementAmount),
	}

	rules := make([]lease.EscalationRule, 0, len(lj.Escalations))
	for _, ej := range lj.Escalations {
		rule, err := parseEscalation(ej)
		if err != nil {
			return lease.Lease{}, nil, err
		}
		rules = append(rules, rule)
	}
	return l, rules, nil
}

// ParseContract parses a JSON string into a revenue.Contract.
func (f *InstrumentFactory) ParseContract(jsonStr string) (revenue.Contract, error) {
	var cj ContractJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return revenue.Contract{}, fmt.Errorf("failed to parse contract JSON: %w", err)
	}
	return f.ContractFromJSON(cj)
}

// ContractFromJSON converts ContractJSON to a revenue.Contract.
func (f *InstrumentFactory) ContractFromJSON(cj ContractJSON) (revenue.Contract, error) {
	start, err := parseDate(cj.RentalStart, "rental_start")
	if err != nil {
		return revenue.Contract{}, err
	}
	end, err := parseDate(cj.RentalEnd, "rental_end")
	if err != nil {
		return revenue.Contract{}, err
	}

	return revenue.Contract{
		ContractID:   cj.ContractID,
		Customer:     cj.Customer,
		Description:  cj.Description,
		RentalStart:  start,
		RentalEnd:    end,
		TotalValue:   decimal.NewFromFloat(cj.TotalValue),
		BilledAmount: decimal.NewFromFloat(cj.BilledAmount),
	}, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (use YYYY-MM-DD): %w", field, s, err)
	}
	return t, nil
}

func parseBookMethod(s string) (depreciation.BookMethod, error) {
	switch depreciation.BookMethod(s) {
	case depreciation.BookStraightLine, depreciation.BookDecliningBalance, depreciation.BookNone:
		return depreciation.BookMethod(s), nil
	case "":
		return depreciation.BookNone, nil
	default:
		return "", fmt.Errorf("unknown book method: %s", s)
	}
}

func parseTaxMethod(s string) (depreciation.TaxMethod, error) {
	switch depreciation.TaxMethod(s) {
	case depreciation.TaxMACRS5, depreciation.TaxMACRS7, depreciation.TaxMACRS10,
		depreciation.TaxSection179, depreciation.TaxBonus100, depreciation.TaxBonus80,
		depreciation.TaxBonus60, depreciation.TaxStraightLine, depreciation.TaxNone:
		return depreciation.TaxMethod(s), nil
	case "":
		return depreciation.TaxNone, nil
	default:
		return "", fmt.Errorf("unknown tax method: %s", s)
	}
}

func parseDebtType(s string) (debt.Type, error) {
	switch debt.Type(s) {
	case debt.TermLoan, debt.LineOfCredit:
		return debt.Type(s), nil
	default:
		return "", fmt.Errorf("unknown debt type: %s", s)
	}
}

func parseTaxFrequency(s string) (lease.TaxFrequency, error) {
	switch lease.TaxFrequency(s) {
	case lease.TaxMonthly, lease.TaxSemiAnnual, lease.TaxAnnual:
		return lease.TaxFrequency(s), nil
	case "":
		return lease.TaxMonthly, nil
	default:
		return "", fmt.Errorf("unknown property tax frequency: %s", s)
	}
}

func parseEscalation(ej EscalationJSON) (lease.EscalationRule, error) {
	switch lease.EscalationType(ej.Type) {
	case lease.EscalationFixedPercentage, lease.EscalationFixedAmount, lease.EscalationCPI:
	default:
		return lease.EscalationRule{}, fmt.Errorf("unknown escalation type: %s", ej.Type)
	}
	effective, err := parseDate(ej.EffectiveDate, "effective_date")
	if err != nil {
		return lease.EscalationRule{}, err
	}
	return lease.EscalationRule{
		Type:          lease.EscalationType(ej.Type),
		EffectiveDate: effective,
		Percentage:    decimal.NewFromFloat(ej.Percentage),
		Amount:        decimal.NewFromFloat(ej.Amount),
		Frequency:     ej.Frequency,
	}, nil
}
