// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a history of conversion outcomes in a SQLite
// database so that earlier batch runs can be listed and exported.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/txt2pdf/pkg/types"
)

const defaultLimit = 50

// Entry is one recorded conversion outcome.
type Entry struct {
	ID         int64                  `json:"id" yaml:"id"`
	Source     string                 `json:"source" yaml:"source"`
	Output     string                 `json:"output" yaml:"output"`
	Status     types.ConversionStatus `json:"status" yaml:"status"`
	Pages      int                    `json:"pages" yaml:"pages"`
	Lines      int                    `json:"lines" yaml:"lines"`
	Error      string                 `json:"error,omitempty" yaml:"error,omitempty"`
	RecordedAt time.Time              `json:"recorded_at" yaml:"recorded_at"`
}

// ListOptions filters List results.
type ListOptions struct {
	// Status restricts entries to one outcome. Empty matches all.
	Status types.ConversionStatus

	// Source restricts entries to one source path. Empty matches all.
	Source string

	// Limit caps the number of entries. Zero uses the default (50);
	// negative means no limit.
	Limit int
}

// Store manages the ledger database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger database at cfg.Path, creating parent
// directories and the schema as needed.
func Open(cfg types.LedgerConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("ledger path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			output TEXT NOT NULL,
			status TEXT NOT NULL,
			pages INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores results in a single transaction and returns how many rows
// were written.
func (s *Store) Record(ctx context.Context, results ...types.FileResult) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversions (source, output, status, pages, lines, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	ts := s.now().UTC().Format(time.RFC3339Nano)
	for _, r := range results {
		var msg sql.NullString
		if r.Err != nil {
			msg = sql.NullString{String: r.Err.Error(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			r.Source, r.Output, string(r.Status), r.Pages, r.Lines, msg, ts,
		); err != nil {
			return 0, fmt.Errorf("recording %s: %w", r.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(results), nil
}

// List returns recorded entries, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, source, output, status, pages, lines, error, recorded_at
		FROM conversions WHERE 1=1`)
	if opts.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(opts.Status))
	}
	if opts.Source != "" {
		qb.WriteString(` AND source = ?`)
		args = append(args, opts.Source)
	}
	qb.WriteString(` ORDER BY id DESC`)

	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			status string
			msg    sql.NullString
			ts     string
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.Output, &status, &e.Pages, &e.Lines, &msg, &ts); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		e.Status = types.ConversionStatus(status)
		e.Error = msg.String
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Recordable filters results down to the outcomes worth keeping: converted
// and failed files. Skips are not recorded, so a rerun with nothing new
// leaves the ledger untouched.
func Recordable(results []types.FileResult) []types.FileResult {
	var out []types.FileResult
	for _, r := range results {
		if r.Status == types.ConversionDone || r.Status == types.ConversionFailed {
			out = append(out, r)
		}
	}
	return out
}

// RecordResults records the recordable results of a batch in the ledger
// configured by cfg. The database is only opened when the ledger is enabled
// and there is something to record. Cancellation of ctx is ignored: an
// interrupted batch has already deleted the sources of the files it
// converted, and those must still reach the ledger.
func RecordResults(ctx context.Context, cfg types.LedgerConfig, results []types.FileResult) (int, error) {
	keep := Recordable(results)
	if !cfg.Enabled() || len(keep) == 0 {
		return 0, nil
	}
	ctx = context.WithoutCancel(ctx)

	s, err := Open(cfg)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	return s.Record(ctx, keep...)
}
