package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

type gameRow struct {
	SessionID   string `db:"session_id"`
	Snapshot    string `db:"snapshot"`
	Version     int64  `db:"version"`
	UpdatedAtMs int64  `db:"updated_at_ms"`
}

type GameRepo struct {
	db *DB
}

func NewGameRepo(db *DB) GameRepo {
	return GameRepo{db: db}
}

func (r GameRepo) GetBySessionID(ctx context.Context, sessionID string) (ports.GameRecord, error) {
	var row gameRow
	err := r.db.q(ctx).GetContext(ctx, &row,
		"SELECT session_id, snapshot, version, updated_at_ms FROM games WHERE session_id = ?", sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.GameRecord{}, ports.ErrNotFound
		}
		return ports.GameRecord{}, err
	}
	// A corrupt blob still yields a record; the loader resets it to a new game.
	snap, err := realm.DecodeSnapshot([]byte(row.Snapshot))
	if err != nil {
		slog.Warn("stored snapshot failed to decode", "session_id", row.SessionID, "version", row.Version, "err", err)
	}
	return ports.GameRecord{
		SessionID: row.SessionID,
		Snapshot:  snap,
		Version:   row.Version,
		UpdatedAt: time.UnixMilli(row.UpdatedAtMs).UTC(),
	}, nil
}

func (r GameRepo) SaveWithVersion(ctx context.Context, record ports.GameRecord, expectedVersion int64) error {
	raw, err := realm.EncodeSnapshot(record.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	q := r.db.q(ctx)
	if expectedVersion == 0 {
		_, err := q.ExecContext(ctx,
			"INSERT INTO games (session_id, snapshot, version, updated_at_ms) VALUES (?, ?, ?, ?)",
			record.SessionID, string(raw), record.Version, record.UpdatedAt.UnixMilli())
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}

	res, err := q.ExecContext(ctx,
		"UPDATE games SET snapshot = ?, version = ?, updated_at_ms = ? WHERE session_id = ? AND version = ?",
		string(raw), record.Version, record.UpdatedAt.UnixMilli(), record.SessionID, expectedVersion)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrConflict
	}
	return nil
}
