package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mortgage-agent/domain"

	_ "modernc.org/sqlite"
)

const projectionSchema = `
CREATE TABLE IF NOT EXISTS projection_runs (
	run_id     TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	payload    TEXT NOT NULL
)`

// ProjectionRepositorySQLite archives projections as JSON documents in SQLite.
// With the default ":memory:" DSN the archive lives only as long as the process.
type ProjectionRepositorySQLite struct {
	db *sql.DB
}

// OpenProjectionRepositorySQLite opens the database and creates the schema.
func OpenProjectionRepositorySQLite(dsn string) (*ProjectionRepositorySQLite, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite dsn is required")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(projectionSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &ProjectionRepositorySQLite{db: db}, nil
}

func (r *ProjectionRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *ProjectionRepositorySQLite) Save(ctx context.Context, result domain.ProjectionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode projection %s: %w", result.RunID, err)
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO projection_runs (run_id, created_at, payload) VALUES (?, ?, ?)",
		result.RunID, result.CreatedAt.UTC().UnixMilli(), string(payload))
	if err != nil {
		return fmt.Errorf("insert projection %s: %w", result.RunID, err)
	}
	return nil
}

func (r *ProjectionRepositorySQLite) Get(ctx context.Context, runID string) (domain.ProjectionResult, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		"SELECT payload FROM projection_runs WHERE run_id = ?", runID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProjectionResult{}, ErrNotFound
	}
	if err != nil {
		return domain.ProjectionResult{}, fmt.Errorf("query projection %s: %w", runID, err)
	}

	var result domain.ProjectionResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return domain.ProjectionResult{}, fmt.Errorf("decode projection %s: %w", runID, err)
	}
	return result, nil
}
