/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Instrument CRUD and validation at the API boundary
- Schedule endpoints (depreciation, amortization, lease, revenue)
- Month-end close runs (execution, idempotence, audit lines)
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgerkit/schedule-engine/store/sqlite"
)

func newTestRouter(t *testing.T) (*Handler, http.Handler) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store)
	return h, NewRouter(h)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestCreateAndGetAsset(t *testing.T) {
	// GIVEN: A fresh server
	_, router := newTestRouter(t)

	// WHEN: Creating an asset
	rec := doRequest(t, router, http.MethodPost, "/api/assets", map[string]any{
		"id":               "asset-001",
		"description":      "Forklift",
		"acquisition_cost": 42000,
		"in_service_date":  "2024-03-01",
		"book_method":      "straight_line",
		"book_life_months": 84,
		"tax_method":       "macrs_7",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// THEN: It can be fetched back with its config
	rec = doRequest(t, router, http.MethodGet, "/api/assets/asset-001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var dto AssetDTO
	decodeBody(t, rec, &dto)
	if dto.ID != "asset-001" {
		t.Errorf("Expected asset-001, got %s", dto.ID)
	}
	if dto.Config.BookMethod != "straight_line" {
		t.Errorf("Expected straight_line, got %s", dto.Config.BookMethod)
	}
}

func TestCreateAsset_InvalidMethodRejected(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/assets", map[string]any{
		"id":              "asset-bad",
		"in_service_date": "2024-01-01",
		"book_method":     "sum_of_years",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown book method, got %d", rec.Code)
	}
}

func TestGetAsset_NotFound(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/assets/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}

func TestAssetScheduleEndpoint(t *testing.T) {
	// GIVEN: A straight-line asset, 12000 over 12 months from Jan 2024
	_, router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/assets", map[string]any{
		"id":               "asset-sl",
		"acquisition_cost": 12000,
		"in_service_date":  "2024-01-01",
		"book_method":      "straight_line",
		"book_life_months": 12,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// WHEN: Requesting the schedule through March 2024
	rec = doRequest(t, router, http.MethodGet, "/api/assets/asset-sl/schedule?through=2024-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	// THEN: Three entries of 1000 book depreciation each
	var entries []DepreciationEntryDTO
	decodeBody(t, rec, &entries)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.BookDepreciation != 1000 {
			t.Errorf("Period %s: expected 1000, got %v", e.Period, e.BookDepreciation)
		}
	}
	if entries[2].BookAccumulated != 3000 {
		t.Errorf("Expected accumulated 3000, got %v", entries[2].BookAccumulated)
	}
}

func TestDebtScheduleEndpoint(t *testing.T) {
	// GIVEN: A 100k loan at 6% over 12 months
	_, router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/debt", map[string]any{
		"id":              "loan-1",
		"type":            "term_loan",
		"original_amount": 100000,
		"interest_rate":   0.06,
		"term_months":     12,
		"start_date":      "2024-01-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// WHEN: Requesting the full schedule
	rec = doRequest(t, router, http.MethodGet, "/api/debt/loan-1/schedule?through=2024-12", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	// THEN: 12 entries, first interest 500, final balance 0
	var entries []AmortizationEntryDTO
	decodeBody(t, rec, &entries)
	if len(entries) != 12 {
		t.Fatalf("Expected 12 entries, got %d", len(entries))
	}
	if entries[0].Interest != 500 {
		t.Errorf("Expected first interest 500, got %v", entries[0].Interest)
	}
	if entries[11].EndingBalance != 0 {
		t.Errorf("Expected final balance 0, got %v", entries[11].EndingBalance)
	}
}

func TestLeaseScheduleEndpoint(t *testing.T) {
	// GIVEN: A one-year lease with an escalation effective mid-term
	_, router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/leases", map[string]any{
		"id":                "lease-1",
		"commencement_date": "2024-01-01",
		"expiration_date":   "2024-12-31",
		"base_rent":         5000,
		"cam_monthly":       800,
		"escalations": []map[string]any{
			{"type": "fixed_percentage", "effective_date": "2024-07-01", "percentage": 0.03},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/leases/lease-1/schedule", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var entries []LeaseEntryDTO
	decodeBody(t, rec, &entries)

	// 12 months x (base_rent + cam)
	if len(entries) != 24 {
		t.Fatalf("Expected 24 entries, got %d", len(entries))
	}

	rents := map[string]float64{}
	for _, e := range entries {
		if e.Type == "base_rent" {
			rents[e.Period] = e.Amount
		}
	}
	if rents["2024-06"] != 5000 {
		t.Errorf("Expected June rent 5000, got %v", rents["2024-06"])
	}
	if rents["2024-07"] != 5150 {
		t.Errorf("Expected July rent 5150, got %v", rents["2024-07"])
	}
}

func TestRevenueReportEndpoint(t *testing.T) {
	// GIVEN: A January contract partially billed
	_, router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/contracts", map[string]any{
		"contract_id":   "rc-100",
		"customer":      "Acme Events",
		"rental_start":  "2024-01-01",
		"rental_end":    "2024-01-31",
		"total_value":   3100,
		"billed_amount": 1500,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// WHEN: Requesting the January report
	rec = doRequest(t, router, http.MethodGet, "/api/revenue?period=2024-01", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	// THEN: Earned 3100, accrual 1600, no deferral
	var report RevenueReportDTO
	decodeBody(t, rec, &report)
	if len(report.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(report.Lines))
	}
	line := report.Lines[0]
	if line.EarnedRevenue != 3100 {
		t.Errorf("Expected earned 3100, got %v", line.EarnedRevenue)
	}
	if line.AccrualAmount != 1600 {
		t.Errorf("Expected accrual 1600, got %v", line.AccrualAmount)
	}
	if line.DeferralAmount != 0 {
		t.Errorf("Expected no deferral, got %v", line.DeferralAmount)
	}
	if report.Summary.TotalAccrual != 1600 {
		t.Errorf("Expected summary accrual 1600, got %v", report.Summary.TotalAccrual)
	}
}

func TestRunClose(t *testing.T) {
	// GIVEN: A populated database (full-close scenario)
	_, router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/scenarios/load", map[string]string{
		"scenario_id": "full-close",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 loading scenario, got %d: %s", rec.Code, rec.Body.String())
	}

	// WHEN: Closing June 2024
	rec = doRequest(t, router, http.MethodPost, "/api/close/run", map[string]string{
		"period": "2024-06",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result CloseResultDTO
	decodeBody(t, rec, &result)

	// THEN: The run completed and produced lines for every instrument
	// family (the contracts show up as deferrals - fully billed, nothing
	// earned in June)
	if result.Run.Status != "completed" {
		t.Fatalf("Expected completed run, got %s (%s)", result.Run.Status, result.Run.Error)
	}
	if result.Run.Period != "2024-06" {
		t.Errorf("Expected period 2024-06, got %s", result.Run.Period)
	}
	if len(result.Lines) == 0 {
		t.Fatal("Expected schedule lines, got none")
	}

	families := map[string]bool{}
	for _, l := range result.Lines {
		families[l.InstrumentType] = true
		if l.Period != "2024-06" {
			t.Errorf("Line %s:%s has period %s", l.InstrumentID, l.Category, l.Period)
		}
	}
	for _, want := range []string{"asset", "debt", "lease", "contract"} {
		if !families[want] {
			t.Errorf("Expected %s lines in the close", want)
		}
	}

	// AND: The run is listed and its lines can be fetched
	rec = doRequest(t, router, http.MethodGet, "/api/close/runs", nil)
	var runs []CloseRunDTO
	decodeBody(t, rec, &runs)
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	rec = doRequest(t, router, http.MethodGet, "/api/close/runs/"+result.Run.ID+"/lines", nil)
	var lines []ScheduleLineDTO
	decodeBody(t, rec, &lines)
	if len(lines) != len(result.Lines) {
		t.Errorf("Expected %d persisted lines, got %d", len(result.Lines), len(lines))
	}
}

func TestRunClose_PeriodAlreadyClosed(t *testing.T) {
	// GIVEN: June 2024 already closed
	_, router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/close/run", map[string]string{"period": "2024-06"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// WHEN: Closing it again
	rec = doRequest(t, router, http.MethodPost, "/api/close/run", map[string]string{"period": "2024-06"})

	// THEN: Conflict
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", rec.Code)
	}
}

func TestScenarioLoadAndList(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/scenarios/load", map[string]string{
		"scenario_id": "equipment-fleet",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/assets", nil)
	var assets []AssetDTO
	decodeBody(t, rec, &assets)
	if len(assets) != 4 {
		t.Fatalf("Expected 4 assets, got %d", len(assets))
	}

	// Unknown scenario rejected
	rec = doRequest(t, router, http.MethodPost, "/api/scenarios/load", map[string]string{
		"scenario_id": "does-not-exist",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestDeleteAsset(t *testing.T) {
	_, router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/api/assets", map[string]any{
		"id":               "asset-del",
		"acquisition_cost": 100,
		"in_service_date":  "2024-01-01",
	})

	rec := doRequest(t, router, http.MethodDelete, "/api/assets/asset-del", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/assets/asset-del", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", rec.Code)
	}
}
