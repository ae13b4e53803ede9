// Package history stores check-run results in a local SQLite database so
// earlier runs can be listed and inspected.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	document    TEXT NOT NULL,
	suite       TEXT NOT NULL,
	total       INTEGER NOT NULL,
	passed      INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	errored     INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS checks (
	run_id  TEXT NOT NULL REFERENCES runs(id),
	name    TEXT NOT NULL,
	passed  INTEGER NOT NULL,
	message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS checks_run_id ON checks(run_id);
`

// Run is one recorded suite run.
type Run struct {
	ID        string
	StartedAt time.Time
	Document  string
	Suite     string
	Total     int
	Passed    int
	Failed    int
	Errored   int
	Duration  time.Duration
}

// Check is one recorded check outcome. Message carries the failure
// diagnostic, or the error text for checks that could not be evaluated.
type Check struct {
	RunID   string
	Name    string
	Passed  bool
	Message string
}

// Store is a handle on the history database.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Open opens (and if needed initializes) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{
		db:           db,
		queryTimeout: 30 * time.Second,
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores one run with all its check outcomes and returns the
// generated run id.
func (s *Store) RecordRun(result *suite.RunResult) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	startedAt := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, document, suite, total, passed, failed, errored, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, startedAt, result.Document, result.Suite,
		len(result.Results), result.Passed, result.Failed, result.Errored,
		result.Duration.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, c := range result.Results {
		message := c.Message
		if c.Err != nil {
			message = c.Err.Error()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO checks (run_id, name, passed, message) VALUES (?, ?, ?, ?)`,
			id, c.Name, c.Passed, message)
		if err != nil {
			return "", fmt.Errorf("failed to insert check: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, document, suite, total, passed, failed, errored, duration_ms
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var durationMs int64
		if err := rows.Scan(&r.ID, &startedAt, &r.Document, &r.Suite,
			&r.Total, &r.Passed, &r.Failed, &r.Errored, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

// RunChecks returns the check outcomes of one run, in recorded order.
func (s *Store) RunChecks(runID string) ([]Check, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, name, passed, message FROM checks WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var c Check
		if err := rows.Scan(&c.RunID, &c.Name, &c.Passed, &c.Message); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		checks = append(checks, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return checks, nil
}
