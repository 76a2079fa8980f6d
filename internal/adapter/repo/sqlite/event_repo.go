package sqliterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

type eventRow struct {
	Type         string         `db:"type"`
	OccurredAtMs int64          `db:"occurred_at_ms"`
	PayloadJSON  sql.NullString `db:"payload_json"`
}

type EventRepo struct {
	db *DB
}

func NewEventRepo(db *DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, events []realm.DomainEvent) error {
	q := r.db.q(ctx)
	for _, e := range events {
		var payload sql.NullString
		if e.Payload != nil {
			b, _ := json.Marshal(e.Payload)
			payload = sql.NullString{String: string(b), Valid: true}
		}
		if _, err := q.ExecContext(ctx,
			"INSERT INTO domain_events (session_id, type, occurred_at_ms, payload_json) VALUES (?, ?, ?, ?)",
			sessionID, e.Type, e.OccurredAt.UnixMilli(), payload); err != nil {
			return err
		}
	}
	return nil
}

// ListBySessionID returns newest events first; limit <= 0 returns all.
func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]realm.DomainEvent, error) {
	query := "SELECT type, occurred_at_ms, payload_json FROM domain_events WHERE session_id = ? ORDER BY occurred_at_ms DESC, id DESC"
	args := []any{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	var rows []eventRow
	if err := r.db.q(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]realm.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if row.PayloadJSON.Valid {
			_ = json.Unmarshal([]byte(row.PayloadJSON.String), &payload)
		}
		out = append(out, realm.DomainEvent{
			Type:       row.Type,
			OccurredAt: time.UnixMilli(row.OccurredAtMs).UTC(),
			Payload:    payload,
		})
	}
	return out, nil
}
