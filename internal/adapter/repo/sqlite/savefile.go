package sqliterepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/app/session"
	"idlarz/internal/domain/realm"
)

// LocalSessionID names the single game kept in a CLI save file.
const LocalSessionID = "local"

// SaveFile keeps one game in a SQLite file and tracks its stored version.
type SaveFile struct {
	db        *DB
	games     GameRepo
	sessionID string
	version   int64
}

func OpenSaveFile(path string) (*SaveFile, error) {
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open save file %s: %w", path, err)
	}
	return &SaveFile{db: db, games: NewGameRepo(db), sessionID: LocalSessionID}, nil
}

func (f *SaveFile) Close() error {
	return f.db.Close()
}

// Load restores the saved game and credits offline production up to now. A
// missing save yields a new game; the returned flag reports whether one was
// found.
func (f *SaveFile) Load(ctx context.Context, engine realm.Engine, now time.Time) (*realm.Game, realm.TickResult, bool, error) {
	loaded, err := session.Load(ctx, f.games, engine, f.sessionID)
	if errors.Is(err, ports.ErrNotFound) {
		f.version = 0
		return realm.NewGame(engine), realm.TickResult{}, false, nil
	}
	if err != nil {
		return nil, realm.TickResult{}, false, err
	}
	f.version = loaded.Record.Version
	offline := loaded.Settle(engine, now)
	game, err := realm.LoadGame(engine, engine.Snapshot(loaded.State))
	if err != nil {
		return nil, realm.TickResult{}, false, err
	}
	return game, offline, true, nil
}

// Save writes snap as the next version of the local game.
func (f *SaveFile) Save(ctx context.Context, snap realm.Snapshot, at time.Time) error {
	next := ports.GameRecord{
		SessionID: f.sessionID,
		Snapshot:  snap,
		Version:   f.version + 1,
		UpdatedAt: at,
	}
	if err := f.games.SaveWithVersion(ctx, next, f.version); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	f.version = next.Version
	return nil
}
