package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/taxometer/pkg/taxometer/internalerr"
	"github.com/cognicore/taxometer/pkg/taxometer/store"
)

// sqliteStore implements store.Store on a SQLite database.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite-backed run store with WAL mode
// enabled and the schema initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for concurrent readers alongside the writer.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		state TEXT NOT NULL,
		composite_score REAL NOT NULL,
		overall_grade TEXT NOT NULL,
		legitimate INTEGER NOT NULL,
		confidence REAL NOT NULL,
		iterations TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Close implements store.Store.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts or replaces a run record. Iterations are stored as one
// JSON column; they are only ever read back whole.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: missing id: %w", internalerr.ErrInvalidInput)
	}
	iterations, err := json.Marshal(r.Iterations)
	if err != nil {
		return fmt.Errorf("encode iterations: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
		(id, started_at, finished_at, state, composite_score, overall_grade, legitimate, confidence, iterations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.StartedAt.UnixMilli(),
		r.FinishedAt.UnixMilli(),
		r.State,
		r.CompositeScore,
		r.OverallGrade,
		boolToInt(r.Legitimate),
		r.Confidence,
		string(iterations),
	)
	return err
}

// GetRun returns a run by id.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, state, composite_score, overall_grade, legitimate, confidence, iterations
		FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

// ListRuns returns runs ordered newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, state, composite_score, overall_grade, legitimate, confidence, iterations
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (store.Run, error) {
	var (
		r          store.Run
		started    int64
		finished   int64
		legitimate int
		iterations string
	)
	err := row.Scan(
		&r.ID, &started, &finished, &r.State,
		&r.CompositeScore, &r.OverallGrade, &legitimate, &r.Confidence,
		&iterations,
	)
	if err != nil {
		return store.Run{}, err
	}
	r.StartedAt = time.UnixMilli(started).UTC()
	r.FinishedAt = time.UnixMilli(finished).UTC()
	r.Legitimate = legitimate != 0
	if err := json.Unmarshal([]byte(iterations), &r.Iterations); err != nil {
		return store.Run{}, fmt.Errorf("decode iterations: %w", err)
	}
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
