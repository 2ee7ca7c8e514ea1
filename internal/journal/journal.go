package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Outcome describes what happened to a matched file.
type Outcome string

const (
	OutcomeCopied  Outcome = "copied"
	OutcomeSkipped Outcome = "skipped"
	OutcomePlanned Outcome = "planned"
	OutcomeFailed  Outcome = "failed"
)

// Run identifies a scan invocation.
type Run struct {
	ID         string
	InputRoot  string
	OutputRoot string
	DryRun     bool
}

// Totals are the final counters persisted when a run finishes.
type Totals struct {
	Folders int
	Files   int
	Matches int
	Copied  int
	Skipped int
	Errors  int
}

// Match is a single recorded match.
type Match struct {
	RunID       string
	Source      string
	Destination string
	Outcome     Outcome
	Detail      string
}

// Journal manages run persistence backed by SQLite.
type Journal struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Pragmas are per connection; one connection keeps foreign keys enforced.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Journal{db: db, path: path}, nil
}

// Path returns the on-disk location of the database.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// StartRun inserts the run row.
func (j *Journal) StartRun(ctx context.Context, run Run) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, input_root, output_root, dry_run, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.InputRoot, run.OutputRoot, boolToInt(run.DryRun), timestamp(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordMatch appends a match row for an existing run.
func (j *Journal) RecordMatch(ctx context.Context, m Match) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO matches (run_id, source_path, destination_path, outcome, detail, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.RunID, m.Source, m.Destination, string(m.Outcome), nullableString(m.Detail), timestamp(),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// FinishRun stores the final counters and an optional failure message.
func (j *Journal) FinishRun(ctx context.Context, runID string, totals Totals, failure error) error {
	var failureText any
	if failure != nil {
		failureText = failure.Error()
	}
	res, err := j.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, folders = ?, files = ?, matches = ?, copied = ?, skipped = ?, errors = ?, failure = ?
         WHERE run_id = ?`,
		timestamp(), totals.Folders, totals.Files, totals.Matches, totals.Copied, totals.Skipped, totals.Errors, failureText, runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update run: run %s not found", runID)
	}
	return nil
}

// Matches returns the recorded matches for runID in insertion order.
func (j *Journal) Matches(ctx context.Context, runID string) ([]Match, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, source_path, destination_path, outcome, COALESCE(detail, '') FROM matches WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var result []Match
	for rows.Next() {
		var m Match
		var outcome string
		if err := rows.Scan(&m.RunID, &m.Source, &m.Destination, &outcome, &m.Detail); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Outcome = Outcome(outcome)
		result = append(result, m)
	}
	return result, rows.Err()
}

// Totals returns the counters stored for runID. The boolean is false while the
// run has not finished.
func (j *Journal) Totals(ctx context.Context, runID string) (Totals, bool, error) {
	var t Totals
	var folders, files, matches, copied, skipped, errs sql.NullInt64
	err := j.db.QueryRowContext(ctx,
		`SELECT folders, files, matches, copied, skipped, errors FROM runs WHERE run_id = ?`, runID,
	).Scan(&folders, &files, &matches, &copied, &skipped, &errs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, false, fmt.Errorf("run %s not found", runID)
		}
		return t, false, fmt.Errorf("query run: %w", err)
	}
	if !folders.Valid {
		return t, false, nil
	}
	t = Totals{
		Folders: int(folders.Int64),
		Files:   int(files.Int64),
		Matches: int(matches.Int64),
		Copied:  int(copied.Int64),
		Skipped: int(skipped.Int64),
		Errors:  int(errs.Int64),
	}
	return t, true, nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
