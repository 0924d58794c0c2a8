/*
close.go - Month-end close execution

PURPOSE:
  Runs a close for one accounting period: regenerates every instrument's
  schedule from its stored config, extracts the amounts that land in the
  close period, and persists them as schedule lines under a close run
  record. Shared by the POST /api/close/run endpoint and the background
  scheduler.

WHAT A CLOSE PRODUCES:
  Assets:    book_depreciation, tax_depreciation
  Debt:      payment, principal, interest (active instruments only)
  Leases:    one line per payment category (base_rent, cam, ...)
  Contracts: earned_revenue, accrual, deferral

  Zero amounts are omitted, matching the lease engine's convention.

AUDIT SEMANTICS:
  Schedule lines record what a close computed at the time it ran. They are
  never read back as inputs - a re-run after a config change recomputes
  from scratch. A failed run keeps its record with status "failed".

SEE ALSO:
  - handlers.go: RunClose endpoint
  - scheduler.go: Automated trigger once a period ends
*/
package api

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkit/schedule-engine/debt"
	"github.com/ledgerkit/schedule-engine/depreciation"
	"github.com/ledgerkit/schedule-engine/fincal"
	"github.com/ledgerkit/schedule-engine/lease"
	"github.com/ledgerkit/schedule-engine/revenue"
	"github.com/ledgerkit/schedule-engine/store/sqlite"
)

// executeClose runs a close for the period and persists the run record and
// its schedule lines. Instruments with invalid stored configs are skipped
// and logged; they never fail the run.
func (h *Handler) executeClose(ctx context.Context, period fincal.Period, triggeredBy string) (sqlite.CloseRun, []sqlite.ScheduleLine, error) {
	startTime := time.Now().UTC()
	run := sqlite.CloseRun{
		ID:          fmt.Sprintf("close-%s-%d", period, startTime.UnixNano()),
		Period:      period.String(),
		Status:      "running",
		TriggeredBy: triggeredBy,
		StartedAt:   &startTime,
		CreatedAt:   startTime,
	}

	if err := h.Store.SaveCloseRun(ctx, run); err != nil {
		return run, nil, fmt.Errorf("failed to save close run: %w", err)
	}

	var lines []sqlite.ScheduleLine
	for _, collect := range []func(context.Context, fincal.Period, string) ([]sqlite.ScheduleLine, error){
		h.closeAssetLines,
		h.closeDebtLines,
		h.closeLeaseLines,
		h.closeContractLines,
	} {
		collected, err := collect(ctx, period, run.ID)
		if err != nil {
			return h.failClose(ctx, run, err)
		}
		lines = append(lines, collected...)
	}

	if err := h.Store.SaveScheduleLines(ctx, lines); err != nil {
		return h.failClose(ctx, run, err)
	}

	completedTime := time.Now().UTC()
	run.Status = "completed"
	run.CompletedAt = &completedTime
	if err := h.Store.SaveCloseRun(ctx, run); err != nil {
		return run, lines, fmt.Errorf("failed to update close run: %w", err)
	}

	log.Printf("[Close] Completed %s: %d lines", period, len(lines))
	return run, lines, nil
}

func (h *Handler) failClose(ctx context.Context, run sqlite.CloseRun, cause error) (sqlite.CloseRun, []sqlite.ScheduleLine, error) {
	run.Status = "failed"
	run.Error = cause.Error()
	if err := h.Store.SaveCloseRun(ctx, run); err != nil {
		log.Printf("[Close] Failed to record failure for %s: %v", run.ID, err)
	}
	return run, nil, cause
}

func (h *Handler) closeAssetLines(ctx context.Context, period fincal.Period, runID string) ([]sqlite.ScheduleLine, error) {
	records, err := h.Store.ListInstruments(ctx, sqlite.KindAsset)
	if err != nil {
		return nil, err
	}

	var lines []sqlite.ScheduleLine
	for _, rec := range records {
		asset, err := h.Factory.ParseAsset(rec.ConfigJSON)
		if err != nil {
			log.Printf("[Close] Skipping asset %s: %v", rec.ID, err)
			continue
		}

		entries := depreciation.GenerateSchedule(asset, period)
		for _, e := range entries {
			if !e.Period().Equal(period) {
				continue
			}
			lines = appendLine(lines, runID, "asset", rec.ID, period, "book_depreciation", e.BookDepreciation)
			lines = appendLine(lines, runID, "asset", rec.ID, period, "tax_depreciation", e.TaxDepreciation)
		}
	}
	return lines, nil
}

func (h *Handler) closeDebtLines(ctx context.Context, period fincal.Period, runID string) ([]sqlite.ScheduleLine, error) {
	records, err := h.Store.ListInstruments(ctx, sqlite.KindDebt)
	if err != nil {
		return nil, err
	}

	var lines []sqlite.ScheduleLine
	for _, rec := range records {
		inst, err := h.Factory.ParseDebt(rec.ConfigJSON)
		if err != nil {
			log.Printf("[Close] Skipping debt instrument %s: %v", rec.ID, err)
			continue
		}
		if inst.Status != debt.StatusActive {
			continue
		}

		for _, e := range debt.GenerateSchedule(inst, period) {
			if !e.Period().Equal(period) {
				continue
			}
			lines = appendLine(lines, runID, "debt", rec.ID, period, "payment", e.Payment)
			lines = appendLine(lines, runID, "debt", rec.ID, period, "principal", e.Principal)
			lines = appendLine(lines, runID, "debt", rec.ID, period, "interest", e.Interest)
		}
	}
	return lines, nil
}

func (h *Handler) closeLeaseLines(ctx context.Context, period fincal.Period, runID string) ([]sqlite.ScheduleLine, error) {
	records, err := h.Store.ListInstruments(ctx, sqlite.KindLease)
	if err != nil {
		return nil, err
	}

	var lines []sqlite.ScheduleLine
	for _, rec := range records {
		l, rules, err := h.Factory.ParseLease(rec.ConfigJSON)
		if err != nil {
			log.Printf("[Close] Skipping lease %s: %v", rec.ID, err)
			continue
		}

		for _, e := range lease.GenerateSchedule(l, rules) {
			if !e.Period().Equal(period) {
				continue
			}
			lines = appendLine(lines, runID, "lease", rec.ID, period, string(e.Type), e.Amount)
		}
	}
	return lines, nil
}

func (h *Handler) closeContractLines(ctx context.Context, period fincal.Period, runID string) ([]sqlite.ScheduleLine, error) {
	records, err := h.Store.ListInstruments(ctx, sqlite.KindContract)
	if err != nil {
		return nil, err
	}

	var lines []sqlite.ScheduleLine
	for _, rec := range records {
		contract, err := h.Factory.ParseContract(rec.ConfigJSON)
		if err != nil {
			log.Printf("[Close] Skipping contract %s: %v", rec.ID, err)
			continue
		}

		line := revenue.Calculate(contract, period)
		lines = appendLine(lines, runID, "contract", rec.ID, period, "earned_revenue", line.EarnedRevenue)
		lines = appendLine(lines, runID, "contract", rec.ID, period, "accrual", line.AccrualAmount)
		lines = appendLine(lines, runID, "contract", rec.ID, period, "deferral", line.DeferralAmount)
	}
	return lines, nil
}

// appendLine records one computed amount, omitting zeros.
func appendLine(lines []sqlite.ScheduleLine, runID, instrumentType, instrumentID string, period fincal.Period, category string, amount decimal.Decimal) []sqlite.ScheduleLine {
	if amount.IsZero() {
		return lines
	}
	return append(lines, sqlite.ScheduleLine{
		ID:             fmt.Sprintf("%s:%s:%s:%s", runID, instrumentType, instrumentID, category),
		RunID:          runID,
		InstrumentType: instrumentType,
		InstrumentID:   instrumentID,
		Period:         period.String(),
		Category:       category,
		Amount:         amount.String(),
	})
}
