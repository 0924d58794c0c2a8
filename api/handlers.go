/*
handlers.go - HTTP API handlers for the schedule computation engine

PURPOSE:
  Exposes the schedule engines via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic. Schedules are always
  recomputed from the stored instrument config - nothing served here is
  read back from persisted schedule lines.

ENDPOINTS:
  Assets:
    GET    /api/assets                   List assets
    POST   /api/assets                   Create asset from JSON config
    GET    /api/assets/{id}              Get asset
    DELETE /api/assets/{id}              Delete asset
    GET    /api/assets/{id}/schedule     Depreciation schedule (?through=YYYY-MM)
    POST   /api/assets/{id}/disposition  Gain/loss on sale

  Debt:
    GET    /api/debt                     List debt instruments
    POST   /api/debt                     Create debt instrument
    GET    /api/debt/{id}                Get debt instrument
    DELETE /api/debt/{id}                Delete debt instrument
    GET    /api/debt/{id}/schedule       Amortization schedule (?through=YYYY-MM)

  Leases:
    GET    /api/leases                   List leases
    POST   /api/leases                   Create lease
    GET    /api/leases/{id}              Get lease
    DELETE /api/leases/{id}              Delete lease
    GET    /api/leases/{id}/schedule     Payment schedule

  Contracts:
    GET    /api/contracts                List rental contracts
    POST   /api/contracts                Create contract
    GET    /api/contracts/{id}           Get contract
    DELETE /api/contracts/{id}           Delete contract
    GET    /api/contracts/{id}/revenue   Per-contract recognition (?period=YYYY-MM)
    GET    /api/revenue                  All-contract recognition report

  Close:
    POST   /api/close/run                Run month-end close
    GET    /api/close/runs               List close runs
    GET    /api/close/runs/{id}/lines    Lines a run produced

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Instrument not found
  - 409: Period already closed
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - close.go: Close run execution
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/debt"
	"github.com/ledgerkit/schedule-engine/depreciation"
	"github.com/ledgerkit/schedule-engine/factory"
	"github.com/ledgerkit/schedule-engine/fincal"
	"github.com/ledgerkit/schedule-engine/lease"
	"github.com/ledgerkit/schedule-engine/revenue"
	"github.com/ledgerkit/schedule-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Factory *factory.InstrumentFactory

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:   store,
		Factory: factory.NewInstrumentFactory(),
	}
}

// =============================================================================
// ASSET HANDLERS
// =============================================================================

// ListAssets returns all assets.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListInstruments(r.Context(), sqlite.KindAsset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	dtos := make([]AssetDTO, 0, len(records))
	for _, rec := range records {
		var cfg factory.AssetJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
			continue
		}
		dtos = append(dtos, AssetDTO{
			ID:          rec.ID,
			Description: rec.Description,
			Config:      cfg,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, dtos)
}

// CreateAsset creates an asset from its JSON config.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var cfg factory.AssetJSON
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Validation boundary: reject bad method tags and dates here
	if _, err := h.Factory.AssetFromJSON(cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asset config", err)
		return
	}
	if cfg.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	if err := h.saveConfig(r, sqlite.KindAsset, cfg.ID, cfg.Description, cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save asset", err)
		return
	}

	writeJSON(w, http.StatusCreated, AssetDTO{ID: cfg.ID, Description: cfg.Description, Config: cfg})
}

// GetAsset returns a single asset.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindAsset, "Asset")
	if !ok {
		return
	}

	var cfg factory.AssetJSON
	json.Unmarshal([]byte(rec.ConfigJSON), &cfg)
	writeJSON(w, http.StatusOK, AssetDTO{
		ID:          rec.ID,
		Description: rec.Description,
		Config:      cfg,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
	})
}

// DeleteAsset removes an asset.
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	h.deleteInstrument(w, r, sqlite.KindAsset)
}

// GetAssetSchedule returns the depreciation schedule through a period.
// GET /api/assets/{id}/schedule?through=YYYY-MM
func (h *Handler) GetAssetSchedule(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindAsset, "Asset")
	if !ok {
		return
	}

	through, err := throughParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid through parameter (use YYYY-MM)", err)
		return
	}

	asset, err := h.Factory.ParseAsset(rec.ConfigJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored asset config is invalid", err)
		return
	}

	entries := depreciation.GenerateSchedule(asset, through)
	writeJSON(w, http.StatusOK, toDepreciationEntryDTOs(entries))
}

// AssetDisposition returns book and tax gain/loss for a sale.
// POST /api/assets/{id}/disposition
func (h *Handler) AssetDisposition(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindAsset, "Asset")
	if !ok {
		return
	}

	var req DispositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	asOf, err := fincal.ParsePeriod(req.AsOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM)", err)
		return
	}

	asset, err := h.Factory.ParseAsset(rec.ConfigJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored asset config is invalid", err)
		return
	}

	// Accumulate depreciation through the sale period, then compare sale
	// price against each track's net value.
	entries := depreciation.GenerateSchedule(asset, asOf)
	var accumBook, accumTax decimal.Decimal
	if len(entries) > 0 {
		last := entries[len(entries)-1]
		accumBook = last.BookAccumulated
		accumTax = last.TaxAccumulated
	}

	gl := depreciation.DispositionGainLoss(asset, accumBook, accumTax, decimal.NewFromFloat(req.SalePrice))
	bookGain, _ := gl.Book.Float64()
	taxGain, _ := gl.Tax.Float64()

	writeJSON(w, http.StatusOK, DispositionDTO{
		AssetID:  rec.ID,
		AsOf:     asOf.String(),
		BookGain: bookGain,
		TaxGain:  taxGain,
	})
}

// =============================================================================
// DEBT HANDLERS
// =============================================================================

// ListDebt returns all debt instruments.
func (h *Handler) ListDebt(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListInstruments(r.Context(), sqlite.KindDebt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list debt instruments", err)
		return
	}

	dtos := make([]DebtDTO, 0, len(records))
	for _, rec := range records {
		var cfg factory.DebtJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
			continue
		}
		dtos = append(dtos, DebtDTO{
			ID:          rec.ID,
			Description: rec.Description,
			Config:      cfg,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, dtos)
}

// CreateDebt creates a debt instrument from its JSON config.
func (h *Handler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var cfg factory.DebtJSON
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if _, err := h.Factory.DebtFromJSON(cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid debt config", err)
		return
	}
	if cfg.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	if err := h.saveConfig(r, sqlite.KindDebt, cfg.ID, cfg.Name, cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save debt instrument", err)
		return
	}

	writeJSON(w, http.StatusCreated, DebtDTO{ID: cfg.ID, Description: cfg.Name, Config: cfg})
}

// GetDebt returns a single debt instrument.
func (h *Handler) GetDebt(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindDebt, "Debt instrument")
	if !ok {
		return
	}

	var cfg factory.DebtJSON
	json.Unmarshal([]byte(rec.ConfigJSON), &cfg)
	writeJSON(w, http.StatusOK, DebtDTO{
		ID:          rec.ID,
		Description: rec.Description,
		Config:      cfg,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
	})
}

// DeleteDebt removes a debt instrument.
func (h *Handler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	h.deleteInstrument(w, r, sqlite.KindDebt)
}

// GetDebtSchedule returns the amortization schedule through a period.
// GET /api/debt/{id}/schedule?through=YYYY-MM
func (h *Handler) GetDebtSchedule(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindDebt, "Debt instrument")
	if !ok {
		return
	}

	through, err := throughParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid through parameter (use YYYY-MM)", err)
		return
	}

	inst, err := h.Factory.ParseDebt(rec.ConfigJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored debt config is invalid", err)
		return
	}

	entries := debt.GenerateSchedule(inst, through)
	writeJSON(w, http.StatusOK, toAmortizationEntryDTOs(entries))
}

// =============================================================================
// LEASE HANDLERS
// =============================================================================

// ListLeases returns all leases.
func (h *Handler) ListLeases(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListInstruments(r.Context(), sqlite.KindLease)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leases", err)
		return
	}

	dtos := make([]LeaseDTO, 0, len(records))
	for _, rec := range records {
		var cfg factory.LeaseJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
			continue
		}
		dtos = append(dtos, LeaseDTO{
			ID:          rec.ID,
			Description: rec.Description,
			Config:      cfg,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, dtos)
}

// CreateLease creates a lease from its JSON config.
func (h *Handler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var cfg factory.LeaseJSON
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if _, _, err := h.Factory.LeaseFromJSON(cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid lease config", err)
		return
	}
	if cfg.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	if err := h.saveConfig(r, sqlite.KindLease, cfg.ID, cfg.Premises, cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save lease", err)
		return
	}

	writeJSON(w, http.StatusCreated, LeaseDTO{ID: cfg.ID, Description: cfg.Premises, Config: cfg})
}

// GetLease returns a single lease.
func (h *Handler) GetLease(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindLease, "Lease")
	if !ok {
		return
	}

	var cfg factory.LeaseJSON
	json.Unmarshal([]byte(rec.ConfigJSON), &cfg)
	writeJSON(w, http.StatusOK, LeaseDTO{
		ID:          rec.ID,
		Description: rec.Description,
		Config:      cfg,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
	})
}

// DeleteLease removes a lease.
func (h *Handler) DeleteLease(w http.ResponseWriter, r *http.Request) {
	h.deleteInstrument(w, r, sqlite.KindLease)
}

// GetLeaseSchedule returns the full payment schedule.
// GET /api/leases/{id}/schedule
func (h *Handler) GetLeaseSchedule(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindLease, "Lease")
	if !ok {
		return
	}

	l, rules, err := h.Factory.ParseLease(rec.ConfigJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored lease config is invalid", err)
		return
	}

	entries := lease.GenerateSchedule(l, rules)
	writeJSON(w, http.StatusOK, toLeaseEntryDTOs(entries))
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// ListContracts returns all rental contracts.
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListInstruments(r.Context(), sqlite.KindContract)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contracts", err)
		return
	}

	dtos := make([]ContractDTO, 0, len(records))
	for _, rec := range records {
		var cfg factory.ContractJSON
		if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
			continue
		}
		dtos = append(dtos, ContractDTO{
			ID:          rec.ID,
			Description: rec.Description,
			Config:      cfg,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, dtos)
}

// CreateContract creates a rental contract from its JSON config.
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var cfg factory.ContractJSON
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if _, err := h.Factory.ContractFromJSON(cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract config", err)
		return
	}
	if cfg.ContractID == "" {
		writeError(w, http.StatusBadRequest, "contract_id is required", nil)
		return
	}

	if err := h.saveConfig(r, sqlite.KindContract, cfg.ContractID, cfg.Description, cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save contract", err)
		return
	}

	writeJSON(w, http.StatusCreated, ContractDTO{ID: cfg.ContractID, Description: cfg.Description, Config: cfg})
}

// GetContract returns a single rental contract.
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindContract, "Contract")
	if !ok {
		return
	}

	var cfg factory.ContractJSON
	json.Unmarshal([]byte(rec.ConfigJSON), &cfg)
	writeJSON(w, http.StatusOK, ContractDTO{
		ID:          rec.ID,
		Description: rec.Description,
		Config:      cfg,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
	})
}

// DeleteContract removes a rental contract.
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	h.deleteInstrument(w, r, sqlite.KindContract)
}

// GetContractRevenue returns recognition for one contract in a period.
// GET /api/contracts/{id}/revenue?period=YYYY-MM
func (h *Handler) GetContractRevenue(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.fetchInstrument(w, r, sqlite.KindContract, "Contract")
	if !ok {
		return
	}

	period, err := periodParam(r, "period")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period parameter (use YYYY-MM)", err)
		return
	}

	contract, err := h.Factory.ParseContract(rec.ConfigJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored contract config is invalid", err)
		return
	}

	line := revenue.Calculate(contract, period)
	writeJSON(w, http.StatusOK, toRevenueLineDTO(line))
}

// GetRevenueReport returns recognition across all contracts for a period.
// GET /api/revenue?period=YYYY-MM
func (h *Handler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r, "period")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period parameter (use YYYY-MM)", err)
		return
	}

	records, err := h.Store.ListInstruments(r.Context(), sqlite.KindContract)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contracts", err)
		return
	}

	var contracts []revenue.Contract
	for _, rec := range records {
		contract, err := h.Factory.ParseContract(rec.ConfigJSON)
		if err != nil {
			continue // Skip invalid configs
		}
		contracts = append(contracts, contract)
	}

	lines := revenue.CalculateAll(contracts, period)
	dtos := make([]RevenueLineDTO, len(lines))
	for i, line := range lines {
		dtos[i] = toRevenueLineDTO(line)
	}

	writeJSON(w, http.StatusOK, RevenueReportDTO{
		Period:  period.String(),
		Lines:   dtos,
		Summary: toRevenueSummaryDTO(revenue.Aggregate(lines)),
	})
}

// =============================================================================
// CLOSE HANDLERS
// =============================================================================

// RunClose executes a month-end close for a period.
// POST /api/close/run
func (h *Handler) RunClose(w http.ResponseWriter, r *http.Request) {
	var req RunCloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period := fincal.PeriodOf(time.Now().UTC()).Previous()
	if req.Period != "" {
		var err error
		period, err = fincal.ParsePeriod(req.Period)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM)", err)
			return
		}
	}

	ctx := r.Context()
	done, err := h.Store.IsCloseComplete(ctx, period.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check close status", err)
		return
	}
	if done {
		writeError(w, http.StatusConflict, "Period already closed", nil)
		return
	}

	run, lines, err := h.executeClose(ctx, period, "api")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Close run failed", err)
		return
	}

	result := CloseResultDTO{Run: toCloseRunDTO(run), Lines: toScheduleLineDTOs(lines)}
	result.Run.LineCount = len(lines)
	writeJSON(w, http.StatusOK, result)
}

// ListCloseRuns returns close runs, optionally filtered by ?status=.
// GET /api/close/runs
func (h *Handler) ListCloseRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.GetCloseRuns(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list close runs", err)
		return
	}

	dtos := make([]CloseRunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toCloseRunDTO(run)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCloseRunLines returns the schedule lines a run produced.
// GET /api/close/runs/{id}/lines
func (h *Handler) GetCloseRunLines(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")

	lines, err := h.Store.GetScheduleLines(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule lines", err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleLineDTOs(lines))
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func (h *Handler) fetchInstrument(w http.ResponseWriter, r *http.Request, kind sqlite.InstrumentKind, label string) (*sqlite.InstrumentRecord, bool) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetInstrument(r.Context(), kind, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load "+label, err)
		return nil, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, label+" not found", nil)
		return nil, false
	}
	return rec, true
}

func (h *Handler) deleteInstrument(w http.ResponseWriter, r *http.Request, kind sqlite.InstrumentKind) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteInstrument(r.Context(), kind, id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete instrument", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

func (h *Handler) saveConfig(r *http.Request, kind sqlite.InstrumentKind, id, description string, cfg any) error {
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return h.Store.SaveInstrument(r.Context(), sqlite.InstrumentRecord{
		ID:          id,
		Kind:        kind,
		Description: description,
		ConfigJSON:  string(configJSON),
	})
}

// throughParam parses ?through=YYYY-MM, defaulting to the current period.
func throughParam(r *http.Request) (fincal.Period, error) {
	return periodParam(r, "through")
}

// periodParam parses a period query parameter, defaulting to the current
// period when absent.
func periodParam(r *http.Request, name string) (fincal.Period, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fincal.PeriodOf(time.Now().UTC()), nil
	}
	return fincal.ParsePeriod(s)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
