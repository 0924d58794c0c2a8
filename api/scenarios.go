/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	instruments for testing and demos. Each scenario creates a set of
	assets, debt instruments, leases, or contracts that demonstrate
	specific engine behavior.

AVAILABLE SCENARIOS:

	equipment-fleet:   Assets across book and tax methods
	financing:         Term loan plus a drawn line of credit
	headquarters-lease: Lease with escalations, abatement, property tax
	rental-season:     Rental contracts straddling a month boundary
	full-close:        All of the above, ready for a close run

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Save instrument configs (the same JSON the API accepts)
 3. Schedules are computed on demand - nothing to precompute

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "full-close"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - factory/instrument.go: Instrument JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ledgerkit/schedule-engine/factory"
	"github.com/ledgerkit/schedule-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "equipment-fleet",
		Name:        "Equipment Fleet",
		Description: "Assets across straight-line, declining balance, MACRS, Section 179 and bonus",
	},
	{
		ID:          "financing",
		Name:        "Financing",
		Description: "Amortizing term loan plus a drawn line of credit",
	},
	{
		ID:          "headquarters-lease",
		Name:        "Headquarters Lease",
		Description: "Lease with annual escalations, rent abatement and semi-annual property tax",
	},
	{
		ID:          "rental-season",
		Name:        "Rental Season",
		Description: "Rental contracts straddling a month boundary, with accruals and deferrals",
	},
	{
		ID:          "full-close",
		Name:        "Full Close",
		Description: "Every instrument family populated, ready for a month-end close run",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "equipment-fleet":
		err = h.loadEquipmentFleetScenario(ctx)
	case "financing":
		err = h.loadFinancingScenario(ctx)
	case "headquarters-lease":
		err = h.loadHeadquartersLeaseScenario(ctx)
	case "rental-season":
		err = h.loadRentalSeasonScenario(ctx)
	case "full-close":
		err = h.loadFullCloseScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadEquipmentFleetScenario(ctx context.Context) error {
	assets := []factory.AssetJSON{
		{
			ID:              "asset-truck-01",
			Description:     "Box truck",
			AcquisitionCost: 48000,
			InServiceDate:   "2024-01-01",
			BookMethod:      "straight_line",
			BookLifeMonths:  60,
			TaxMethod:       "macrs_5",
		},
		{
			ID:               "asset-forklift-01",
			Description:      "Warehouse forklift",
			AcquisitionCost:  42000,
			InServiceDate:    "2024-03-01",
			BookMethod:       "straight_line",
			BookLifeMonths:   84,
			BookSalvageValue: 2000,
			TaxMethod:        "macrs_7",
		},
		{
			ID:              "asset-compressor-01",
			Description:     "Air compressor",
			AcquisitionCost: 12000,
			InServiceDate:   "2024-06-01",
			BookMethod:      "declining_balance",
			BookLifeMonths:  36,
			TaxMethod:       "section_179",
		},
		{
			ID:              "asset-generator-01",
			Description:     "Towable generator",
			AcquisitionCost: 30000,
			InServiceDate:   "2024-09-01",
			BookMethod:      "straight_line",
			BookLifeMonths:  120,
			TaxMethod:       "bonus_80",
			BonusAmount:     24000,
		},
	}

	for _, cfg := range assets {
		if err := h.saveScenarioConfig(ctx, sqlite.KindAsset, cfg.ID, cfg.Description, cfg); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadFinancingScenario(ctx context.Context) error {
	instruments := []factory.DebtJSON{
		{
			ID:             "loan-equipment",
			Name:           "Equipment term loan",
			Type:           "term_loan",
			OriginalAmount: 100000,
			InterestRate:   0.06,
			TermMonths:     12,
			StartDate:      "2024-01-01",
		},
		{
			ID:             "loan-expansion",
			Name:           "Facility expansion loan",
			Type:           "term_loan",
			OriginalAmount: 250000,
			InterestRate:   0.075,
			TermMonths:     60,
			StartDate:      "2024-04-01",
		},
		{
			ID:           "loc-operating",
			Name:         "Operating line of credit",
			Type:         "line_of_credit",
			InterestRate: 0.12,
			StartDate:    "2024-01-01",
			CreditLimit:  150000,
			CurrentDraw:  50000,
		},
	}

	for _, cfg := range instruments {
		if err := h.saveScenarioConfig(ctx, sqlite.KindDebt, cfg.ID, cfg.Name, cfg); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadHeadquartersLeaseScenario(ctx context.Context) error {
	cfg := factory.LeaseJSON{
		ID:                   "lease-hq",
		Premises:             "Headquarters, 120 Commerce Way",
		CommencementDate:     "2024-01-01",
		ExpirationDate:       "2028-12-31",
		BaseRent:             5000,
		CAMMonthly:           800,
		InsuranceMonthly:     350,
		AnnualPropertyTax:    24000,
		PropertyTaxFrequency: "semi_annual",
		AbatementMonths:      3,
		AbatementAmount:      1000,
		Escalations: []factory.EscalationJSON{
			{Type: "fixed_percentage", EffectiveDate: "2025-01-01", Percentage: 0.03},
			{Type: "fixed_percentage", EffectiveDate: "2026-01-01", Percentage: 0.03},
			{Type: "fixed_amount", EffectiveDate: "2027-01-01", Amount: 500},
			{Type: "cpi", EffectiveDate: "2028-01-01"},
		},
	}
	return h.saveScenarioConfig(ctx, sqlite.KindLease, cfg.ID, cfg.Premises, cfg)
}

func (h *Handler) loadRentalSeasonScenario(ctx context.Context) error {
	contracts := []factory.ContractJSON{
		{
			ContractID:   "rc-stage-festival",
			Customer:     "Harborfest",
			Description:  "Festival stage rental",
			RentalStart:  "2024-01-01",
			RentalEnd:    "2024-01-31",
			TotalValue:   3100,
			BilledAmount: 1500,
		},
		{
			ContractID:   "rc-tent-wedding",
			Customer:     "Lakeside Weddings",
			Description:  "Tent package, straddles month end",
			RentalStart:  "2024-01-20",
			RentalEnd:    "2024-02-10",
			TotalValue:   6600,
			BilledAmount: 6600,
		},
		{
			ContractID:   "rc-av-conference",
			Customer:     "Summit Conferences",
			Description:  "AV equipment, billed ahead of the event",
			RentalStart:  "2024-03-05",
			RentalEnd:    "2024-03-08",
			TotalValue:   2400,
			BilledAmount: 2400,
		},
	}

	for _, cfg := range contracts {
		if err := h.saveScenarioConfig(ctx, sqlite.KindContract, cfg.ContractID, cfg.Description, cfg); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadFullCloseScenario(ctx context.Context) error {
	if err := h.loadEquipmentFleetScenario(ctx); err != nil {
		return err
	}
	if err := h.loadFinancingScenario(ctx); err != nil {
		return err
	}
	if err := h.loadHeadquartersLeaseScenario(ctx); err != nil {
		return err
	}
	return h.loadRentalSeasonScenario(ctx)
}

func (h *Handler) saveScenarioConfig(ctx context.Context, kind sqlite.InstrumentKind, id, description string, cfg any) error {
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return h.Store.SaveInstrument(ctx, sqlite.InstrumentRecord{
		ID:          id,
		Kind:        kind,
		Description: description,
		ConfigJSON:  string(configJSON),
	})
}
