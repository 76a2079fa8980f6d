package session

import (
	"context"
	"log/slog"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

// Loaded is a restored session ready to be settled and mutated.
type Loaded struct {
	Record ports.GameRecord
	State  *realm.State
	// Reset is set when the stored snapshot failed validation and a new game
	// replaced it.
	Reset bool
}

// Load fetches the session and restores its state. Storage errors are
// returned as is; an invalid snapshot never is.
func Load(ctx context.Context, games ports.GameRepository, engine realm.Engine, sessionID string) (Loaded, error) {
	record, err := games.GetBySessionID(ctx, sessionID)
	if err != nil {
		return Loaded{}, err
	}
	state, reset := engine.RestoreOrNew(record.Snapshot)
	if reset {
		slog.Warn("stored game failed validation, reinitialized", "session_id", sessionID, "version", record.Version)
	}
	return Loaded{Record: record, State: state, Reset: reset}, nil
}

// Settle credits production for the time elapsed since the last write. A
// reset session starts counting from now.
func (l *Loaded) Settle(engine realm.Engine, now time.Time) realm.TickResult {
	if l.Reset || l.Record.UpdatedAt.IsZero() {
		return realm.TickResult{}
	}
	elapsed := now.Sub(l.Record.UpdatedAt)
	if elapsed <= 0 {
		return realm.TickResult{}
	}
	return engine.Advance(l.State, float64(elapsed.Milliseconds()))
}

// Next builds the record that replaces l.Record on save.
func (l *Loaded) Next(engine realm.Engine, now time.Time) ports.GameRecord {
	return ports.GameRecord{
		SessionID: l.Record.SessionID,
		Snapshot:  engine.Snapshot(l.State),
		Version:   l.Record.Version + 1,
		UpdatedAt: now,
	}
}
