/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Instruments:
    AssetDTO, DebtDTO, LeaseDTO, ContractDTO (each wraps the factory JSON
    config that the store persists)

  Schedules:
    DepreciationEntryDTO, AmortizationEntryDTO, LeaseEntryDTO,
    RevenueLineDTO, RevenueSummaryDTO

  Close:
    CloseRunDTO, ScheduleLineDTO, CloseResultDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

MONEY AT THE BOUNDARY:
  Internally everything is shopspring decimal; DTOs carry float64 for JSON
  clients. Conversion happens here and only here - amounts are already
  rounded to cents (or 4dp for rates) before they reach a DTO.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/instrument.go: The JSON config types
*/
package api

import (
	"time"

	"github.com/ledgerkit/schedule-engine/debt"
	"github.com/ledgerkit/schedule-engine/depreciation"
	"github.com/ledgerkit/schedule-engine/factory"
	"github.com/ledgerkit/schedule-engine/lease"
	"github.com/ledgerkit/schedule-engine/revenue"
	"github.com/ledgerkit/schedule-engine/store/sqlite"
)

// =============================================================================
// INSTRUMENT TYPES
// =============================================================================

// AssetDTO represents a depreciable asset in API responses.
type AssetDTO struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Config      factory.AssetJSON `json:"config"`
	CreatedAt   string            `json:"created_at,omitempty"`
	UpdatedAt   string            `json:"updated_at,omitempty"`
}

// DebtDTO represents a debt instrument in API responses.
type DebtDTO struct {
	ID          string           `json:"id"`
	Description string           `json:"description,omitempty"`
	Config      factory.DebtJSON `json:"config"`
	CreatedAt   string           `json:"created_at,omitempty"`
	UpdatedAt   string           `json:"updated_at,omitempty"`
}

// LeaseDTO represents a lease in API responses.
type LeaseDTO struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Config      factory.LeaseJSON `json:"config"`
	CreatedAt   string            `json:"created_at,omitempty"`
	UpdatedAt   string            `json:"updated_at,omitempty"`
}

// ContractDTO represents a rental contract in API responses.
type ContractDTO struct {
	ID          string               `json:"id"`
	Description string               `json:"description,omitempty"`
	Config      factory.ContractJSON `json:"config"`
	CreatedAt   string               `json:"created_at,omitempty"`
	UpdatedAt   string               `json:"updated_at,omitempty"`
}

// =============================================================================
// SCHEDULE TYPES
// =============================================================================

// DepreciationEntryDTO is one month of a depreciation schedule.
type DepreciationEntryDTO struct {
	Period           string  `json:"period"` // YYYY-MM
	BookDepreciation float64 `json:"book_depreciation"`
	BookAccumulated  float64 `json:"book_accumulated"`
	BookNetValue     float64 `json:"book_net_value"`
	TaxDepreciation  float64 `json:"tax_depreciation"`
	TaxAccumulated   float64 `json:"tax_accumulated"`
	TaxNetValue      float64 `json:"tax_net_value"`
}

// AmortizationEntryDTO is one month of a debt amortization schedule.
type AmortizationEntryDTO struct {
	Period           string  `json:"period"`
	BeginningBalance float64 `json:"beginning_balance"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	EndingBalance    float64 `json:"ending_balance"`
}

// LeaseEntryDTO is one (month, payment type) row of a lease schedule.
type LeaseEntryDTO struct {
	Period string  `json:"period"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// RevenueLineDTO is the per-contract revenue recognition result.
type RevenueLineDTO struct {
	ContractID     string  `json:"contract_id"`
	Customer       string  `json:"customer,omitempty"`
	DailyRate      float64 `json:"daily_rate"`
	DaysInPeriod   int     `json:"days_in_period"`
	EarnedRevenue  float64 `json:"earned_revenue"`
	BilledAmount   float64 `json:"billed_amount"`
	AccrualAmount  float64 `json:"accrual_amount"`
	DeferralAmount float64 `json:"deferral_amount"`
}

// RevenueSummaryDTO carries non-netted totals across contracts.
type RevenueSummaryDTO struct {
	TotalEarned   float64 `json:"total_earned"`
	TotalBilled   float64 `json:"total_billed"`
	TotalAccrual  float64 `json:"total_accrual"`
	TotalDeferral float64 `json:"total_deferral"`
}

// RevenueReportDTO is the revenue endpoint response.
type RevenueReportDTO struct {
	Period  string            `json:"period"`
	Lines   []RevenueLineDTO  `json:"lines"`
	Summary RevenueSummaryDTO `json:"summary"`
}

// DispositionRequest asks for gain/loss on an asset sale.
type DispositionRequest struct {
	SalePrice float64 `json:"sale_price"`
	AsOf      string  `json:"as_of"` // YYYY-MM, accumulation cutoff
}

// DispositionDTO is the gain/loss on an asset sale.
type DispositionDTO struct {
	AssetID  string  `json:"asset_id"`
	AsOf     string  `json:"as_of"`
	BookGain float64 `json:"book_gain"` // negative = loss
	TaxGain  float64 `json:"tax_gain"`
}

// =============================================================================
// CLOSE TYPES
// =============================================================================

// CloseRunDTO is one month-end close execution.
type CloseRunDTO struct {
	ID          string `json:"id"`
	Period      string `json:"period"`
	Status      string `json:"status"`
	TriggeredBy string `json:"triggered_by,omitempty"`
	Error       string `json:"error,omitempty"`
	StartedAt   string `json:"started_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	LineCount   int    `json:"line_count,omitempty"`
}

// ScheduleLineDTO is one computed amount a close run produced.
type ScheduleLineDTO struct {
	RunID          string `json:"run_id"`
	InstrumentType string `json:"instrument_type"`
	InstrumentID   string `json:"instrument_id"`
	Period         string `json:"period"`
	Category       string `json:"category"`
	Amount         string `json:"amount"` // decimal string, exact
}

// RunCloseRequest triggers a close for a period.
type RunCloseRequest struct {
	Period string `json:"period"` // YYYY-MM; empty = previous month
}

// CloseResultDTO is the response after running a close.
type CloseResultDTO struct {
	Run   CloseRunDTO       `json:"run"`
	Lines []ScheduleLineDTO `json:"lines"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toDepreciationEntryDTOs(entries []depreciation.PeriodEntry) []DepreciationEntryDTO {
	dtos := make([]DepreciationEntryDTO, len(entries))
	for i, e := range entries {
		bookDep, _ := e.BookDepreciation.Float64()
		bookAccum, _ := e.BookAccumulated.Float64()
		bookNet, _ := e.BookNetValue.Float64()
		taxDep, _ := e.TaxDepreciation.Float64()
		taxAccum, _ := e.TaxAccumulated.Float64()
		taxNet, _ := e.TaxNetValue.Float64()
		dtos[i] = DepreciationEntryDTO{
			Period:           e.Period().String(),
			BookDepreciation: bookDep,
			BookAccumulated:  bookAccum,
			BookNetValue:     bookNet,
			TaxDepreciation:  taxDep,
			TaxAccumulated:   taxAccum,
			TaxNetValue:      taxNet,
		}
	}
	return dtos
}

func toAmortizationEntryDTOs(entries []debt.PeriodEntry) []AmortizationEntryDTO {
	dtos := make([]AmortizationEntryDTO, len(entries))
	for i, e := range entries {
		beginning, _ := e.BeginningBalance.Float64()
		payment, _ := e.Payment.Float64()
		principal, _ := e.Principal.Float64()
		interest, _ := e.Interest.Float64()
		ending, _ := e.EndingBalance.Float64()
		dtos[i] = AmortizationEntryDTO{
			Period:           e.Period().String(),
			BeginningBalance: beginning,
			Payment:          payment,
			Principal:        principal,
			Interest:         interest,
			EndingBalance:    ending,
		}
	}
	return dtos
}

func toLeaseEntryDTOs(entries []lease.ScheduleEntry) []LeaseEntryDTO {
	dtos := make([]LeaseEntryDTO, len(entries))
	for i, e := range entries {
		amount, _ := e.Amount.Float64()
		dtos[i] = LeaseEntryDTO{
			Period: e.Period().String(),
			Type:   string(e.Type),
			Amount: amount,
		}
	}
	return dtos
}

func toRevenueLineDTO(line revenue.Line) RevenueLineDTO {
	rate, _ := line.DailyRate.Float64()
	earned, _ := line.EarnedRevenue.Float64()
	billed, _ := line.BilledAmount.Float64()
	accrual, _ := line.AccrualAmount.Float64()
	deferral, _ := line.DeferralAmount.Float64()
	return RevenueLineDTO{
		ContractID:     line.ContractID,
		Customer:       line.Customer,
		DailyRate:      rate,
		DaysInPeriod:   line.DaysInPeriod,
		EarnedRevenue:  earned,
		BilledAmount:   billed,
		AccrualAmount:  accrual,
		DeferralAmount: deferral,
	}
}

func toRevenueSummaryDTO(s revenue.Summary) RevenueSummaryDTO {
	earned, _ := s.TotalEarned.Float64()
	billed, _ := s.TotalBilled.Float64()
	accrual, _ := s.TotalAccrual.Float64()
	deferral, _ := s.TotalDeferral.Float64()
	return RevenueSummaryDTO{
		TotalEarned:   earned,
		TotalBilled:   billed,
		TotalAccrual:  accrual,
		TotalDeferral: deferral,
	}
}

func toCloseRunDTO(r sqlite.CloseRun) CloseRunDTO {
	dto := CloseRunDTO{
		ID:          r.ID,
		Period:      r.Period,
		Status:      r.Status,
		TriggeredBy: r.TriggeredBy,
		Error:       r.Error,
	}
	if r.StartedAt != nil {
		dto.StartedAt = r.StartedAt.Format(time.RFC3339)
	}
	if r.CompletedAt != nil {
		dto.CompletedAt = r.CompletedAt.Format(time.RFC3339)
	}
	return dto
}

func toScheduleLineDTOs(lines []sqlite.ScheduleLine) []ScheduleLineDTO {
	dtos := make([]ScheduleLineDTO, len(lines))
	for i, l := range lines {
		dtos[i] = ScheduleLineDTO{
			RunID:          l.RunID,
			InstrumentType: l.InstrumentType,
			InstrumentID:   l.InstrumentID,
			Period:         l.Period,
			Category:       l.Category,
			Amount:         l.Amount,
		}
	}
	return dtos
}
