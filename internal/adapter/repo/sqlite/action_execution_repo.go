package sqliterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

type executionRow struct {
	SessionID      string         `db:"session_id"`
	IdempotencyKey string         `db:"idempotency_key"`
	IntentType     string         `db:"intent_type"`
	ElapsedMs      float64        `db:"elapsed_ms"`
	ResultCode     string         `db:"result_code"`
	ViewJSON       string         `db:"view_json"`
	EventsJSON     string         `db:"events_json"`
	OutcomeJSON    sql.NullString `db:"outcome_json"`
	AppliedAtMs    int64          `db:"applied_at_ms"`
}

type ActionExecutionRepo struct {
	db *DB
}

func NewActionExecutionRepo(db *DB) ActionExecutionRepo {
	return ActionExecutionRepo{db: db}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*ports.ActionExecutionRecord, error) {
	var row executionRow
	err := r.db.q(ctx).GetContext(ctx, &row, `SELECT session_id, idempotency_key, intent_type, elapsed_ms, result_code,
		view_json, events_json, outcome_json, applied_at_ms
		FROM action_executions WHERE session_id = ? AND idempotency_key = ?`, sessionID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var result ports.ActionResult
	_ = json.Unmarshal([]byte(row.ViewJSON), &result.View)
	_ = json.Unmarshal([]byte(row.EventsJSON), &result.Events)
	if row.OutcomeJSON.Valid {
		_ = json.Unmarshal([]byte(row.OutcomeJSON.String), &result.Outcome)
	}
	result.ResultCode = realm.ResultCode(row.ResultCode)

	return &ports.ActionExecutionRecord{
		SessionID:      row.SessionID,
		IdempotencyKey: row.IdempotencyKey,
		IntentType:     row.IntentType,
		ElapsedMillis:  row.ElapsedMs,
		Result:         result,
		AppliedAt:      time.UnixMilli(row.AppliedAtMs).UTC(),
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	viewJSON, _ := json.Marshal(execution.Result.View)
	eventsJSON, _ := json.Marshal(execution.Result.Events)
	var outcome sql.NullString
	if execution.Result.Outcome != nil {
		b, _ := json.Marshal(execution.Result.Outcome)
		outcome = sql.NullString{String: string(b), Valid: true}
	}
	_, err := r.db.q(ctx).ExecContext(ctx, `INSERT INTO action_executions
		(session_id, idempotency_key, intent_type, elapsed_ms, result_code, view_json, events_json, outcome_json, applied_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		execution.SessionID, execution.IdempotencyKey, execution.IntentType, execution.ElapsedMillis,
		string(execution.Result.ResultCode), string(viewJSON), string(eventsJSON), outcome, execution.AppliedAt.UnixMilli())
	if isUniqueViolation(err) {
		return ports.ErrConflict
	}
	return err
}
