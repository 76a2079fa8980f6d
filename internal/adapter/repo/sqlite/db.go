// Package sqliterepo stores games, credentials, action executions and events
// in a single SQLite file. It backs the server when no Postgres DSN is set and
// holds the CLI save file.
package sqliterepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at path and applies the schema.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer at a time; transactions carry their own handle through ctx.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		session_id TEXT PRIMARY KEY,
		snapshot TEXT NOT NULL,
		version INTEGER NOT NULL,
		updated_at_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS session_credentials (
		session_id TEXT PRIMARY KEY,
		key_salt BLOB NOT NULL,
		key_hash BLOB NOT NULL,
		status TEXT NOT NULL,
		created_at_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS action_executions (
		session_id TEXT NOT NULL,
		idempotency_key TEXT NOT NULL,
		intent_type TEXT NOT NULL,
		elapsed_ms REAL NOT NULL,
		result_code TEXT NOT NULL,
		view_json TEXT NOT NULL,
		events_json TEXT NOT NULL,
		outcome_json TEXT,
		applied_at_ms INTEGER NOT NULL,
		PRIMARY KEY (session_id, idempotency_key)
	);

	CREATE TABLE IF NOT EXISTS domain_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		type TEXT NOT NULL,
		occurred_at_ms INTEGER NOT NULL,
		payload_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_domain_events_session_time ON domain_events(session_id, occurred_at_ms);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Ping reports whether the file is still reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
