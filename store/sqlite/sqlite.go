/*
Package sqlite provides SQLite-backed persistence for instruments and close runs.

PURPOSE:
  Persists the four instrument families (assets, debt, leases, rental
  contracts) as their JSON configs, plus the audit trail of month-end close
  runs and the schedule lines each run produced. In production, the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  assets:           Depreciable asset configs (JSON)
  debt_instruments: Loan and line-of-credit configs (JSON)
  leases:           Lease configs with escalation rules (JSON)
  rental_contracts: Revenue contract configs (JSON)
  close_runs:       One row per month-end close execution (audit trail)
  schedule_lines:   Computed amounts a close run produced, by instrument

CONFIG STORAGE:
  Instruments are stored as the raw JSON the factory package parses. The
  engines recompute schedules from config on every request, so the config
  is the single source of truth; schedule_lines are an audit artifact of a
  close run, never an input to later computations.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/ledgerkit.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - factory/instrument.go: Parses the JSON configs stored here
  - api/handlers.go: HTTP surface over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists instruments, close runs, and schedule lines using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Depreciable assets
	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		description TEXT,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Debt instruments (term loans and lines of credit)
	CREATE TABLE IF NOT EXISTS debt_instruments (
		id TEXT PRIMARY KEY,
		description TEXT,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Leases (config includes escalation rules)
	CREATE TABLE IF NOT EXISTS leases (
		id TEXT PRIMARY KEY,
		description TEXT,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Rental revenue contracts
	CREATE TABLE IF NOT EXISTS rental_contracts (
		id TEXT PRIMARY KEY,
		description TEXT,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Close runs (one row per month-end close execution)
	CREATE TABLE IF NOT EXISTS close_runs (
		id TEXT PRIMARY KEY,
		period TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		triggered_by TEXT,
		error TEXT,
		started_at TEXT,
		completed_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_close_runs_period
		ON close_runs(period);
	CREATE INDEX IF NOT EXISTS idx_close_runs_status
		ON close_runs(status);

	-- Schedule lines produced by close runs (audit trail, never an input)
	CREATE TABLE IF NOT EXISTS schedule_lines (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		instrument_type TEXT NOT NULL,
		instrument_id TEXT NOT NULL,
		period TEXT NOT NULL,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES close_runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_schedule_lines_run
		ON schedule_lines(run_id);
	CREATE INDEX IF NOT EXISTS idx_schedule_lines_instrument
		ON schedule_lines(instrument_type, instrument_id, period);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// INSTRUMENT STORE
// =============================================================================

// InstrumentKind names a persisted instrument family, mapped to its table.
type InstrumentKind string

const (
	KindAsset    InstrumentKind = "asset"
	KindDebt     InstrumentKind = "debt"
	KindLease    InstrumentKind = "lease"
	KindContract InstrumentKind = "contract"
)

var kindTables = map[InstrumentKind]string{
	KindAsset:    "assets",
	KindDebt:     "debt_instruments",
	KindLease:    "leases",
	KindContract: "rental_contracts",
}

// InstrumentRecord is a stored instrument with its JSON config.
type InstrumentRecord struct {
	ID          string
	Kind        InstrumentKind
	Description string
	ConfigJSON  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaveInstrument inserts or updates an instrument config.
func (s *Store) SaveInstrument(ctx context.Context, rec InstrumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := tableFor(rec.Kind)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ` + table + ` (id, description, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.Description, rec.ConfigJSON, now, now,
	)
	return err
}

// GetInstrument retrieves an instrument by kind and ID. Returns nil when
// not found.
func (s *Store) GetInstrument(ctx context.Context, kind InstrumentKind, id string) (*InstrumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	var rec InstrumentRecord
	var createdAt, updatedAt string

	err = s.db.QueryRowContext(ctx,
		"SELECT id, description, config_json, created_at, updated_at FROM "+table+" WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.Description, &rec.ConfigJSON, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.Kind = kind
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// ListInstruments returns all instruments of a kind, ordered by ID.
func (s *Store) ListInstruments(ctx context.Context, kind InstrumentKind) ([]InstrumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, config_json, created_at, updated_at FROM "+table+" ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []InstrumentRecord
	for rows.Next() {
		var rec InstrumentRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&rec.ID, &rec.Description, &rec.ConfigJSON, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		rec.Kind = kind
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteInstrument removes an instrument.
func (s *Store) DeleteInstrument(ctx context.Context, kind InstrumentKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	return err
}

func tableFor(kind InstrumentKind) (string, error) {
	table, ok := kindTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown instrument kind: %s", kind)
	}
	return table, nil
}

// =============================================================================
// CLOSE RUN STORE
// =============================================================================

// CloseRun represents one month-end close execution.
type CloseRun struct {
	ID          string
	Period      string // YYYY-MM
	Status      string // pending, running, completed, failed
	TriggeredBy string // scheduler, api
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// SaveCloseRun inserts or updates a close run.
func (s *Store) SaveCloseRun(ctx context.Context, r CloseRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO close_runs (id, period, status, triggered_by, error, started_at, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			started_at = excluded.started_at,
			completed_at = excluded.completed_at
	`

	var startedAt, completedAt *string
	if r.StartedAt != nil {
		t := r.StartedAt.Format(time.RFC3339)
		startedAt = &t
	}
	if r.CompletedAt != nil {
		t := r.CompletedAt.Format(time.RFC3339)
		completedAt = &t
	}

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.Period, r.Status, r.TriggeredBy, r.Error,
		startedAt, completedAt, r.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetCloseRuns returns close runs, optionally filtered by status,
// most recent first.
func (s *Store) GetCloseRuns(ctx context.Context, status string) ([]CloseRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, period, status, triggered_by, error, started_at, completed_at, created_at
		FROM close_runs
	`
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []CloseRun
	for rows.Next() {
		var r CloseRun
		var triggeredBy, errMsg, startedAt, completedAt sql.NullString
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Period, &r.Status, &triggeredBy, &errMsg,
			&startedAt, &completedAt, &createdAt); err != nil {
			return nil, err
		}

		r.TriggeredBy = triggeredBy.String
		r.Error = errMsg.String
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if startedAt.Valid {
			t, _ := time.Parse(time.RFC3339, startedAt.String)
			r.StartedAt = &t
		}
		if completedAt.Valid {
			t, _ := time.Parse(time.RFC3339, completedAt.String)
			r.CompletedAt = &t
		}

		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// IsCloseComplete checks if a period already has a completed close run.
func (s *Store) IsCloseComplete(ctx context.Context, period string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM close_runs WHERE period = ? AND status = 'completed'",
		period,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// =============================================================================
// SCHEDULE LINE STORE
// =============================================================================

// ScheduleLine is one computed amount a close run produced.
type ScheduleLine struct {
	ID             string
	RunID          string
	InstrumentType string // asset, debt, lease, contract
	InstrumentID   string
	Period         string // YYYY-MM
	Category       string // book_depreciation, interest, base_rent, earned_revenue, ...
	Amount         string // decimal string, exact
	CreatedAt      time.Time
}

// SaveScheduleLines writes all lines for a run in one transaction.
func (s *Store) SaveScheduleLines(ctx context.Context, lines []ScheduleLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	query := `
		INSERT INTO schedule_lines (id, run_id, instrument_type, instrument_id, period, category, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Format(time.RFC3339)
	for _, line := range lines {
		if _, err := sqlTx.ExecContext(ctx, query,
			line.ID, line.RunID, line.InstrumentType, line.InstrumentID,
			line.Period, line.Category, line.Amount, now,
		); err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("duplicate schedule line %s: %w", line.ID, err)
			}
			return fmt.Errorf("failed to insert schedule line: %w", err)
		}
	}

	return sqlTx.Commit()
}

// GetScheduleLines returns all lines a run produced.
func (s *Store) GetScheduleLines(ctx context.Context, runID string) ([]ScheduleLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, run_id, instrument_type, instrument_id, period, category, amount, created_at
		FROM schedule_lines
		WHERE run_id = ?
		ORDER BY instrument_type, instrument_id, category
	`

	return s.queryScheduleLines(ctx, query, runID)
}

// GetScheduleLinesForInstrument returns an instrument's lines across runs.
func (s *Store) GetScheduleLinesForInstrument(ctx context.Context, instrumentType, instrumentID string) ([]ScheduleLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, run_id, instrument_type, instrument_id, period, category, amount, created_at
		FROM schedule_lines
		WHERE instrument_type = ? AND instrument_id = ?
		ORDER BY period ASC, category
	`

	return s.queryScheduleLines(ctx, query, instrumentType, instrumentID)
}

func (s *Store) queryScheduleLines(ctx context.Context, query string, args ...any) ([]ScheduleLine, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule lines: %w", err)
	}
	defer rows.Close()

	var lines []ScheduleLine
	for rows.Next() {
		var line ScheduleLine
		var createdAt string
		if err := rows.Scan(&line.ID, &line.RunID, &line.InstrumentType, &line.InstrumentID,
			&line.Period, &line.Category, &line.Amount, &createdAt); err != nil {
			return nil, err
		}
		line.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"schedule_lines", "close_runs", "assets", "debt_instruments", "leases", "rental_contracts"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
