package memory

import (
	"context"

	"idlarz/internal/app/ports"
)

type GameRepo struct {
	store *Store
}

func NewGameRepo(store *Store) GameRepo {
	return GameRepo{store: store}
}

func (r GameRepo) GetBySessionID(ctx context.Context, sessionID string) (ports.GameRecord, error) {
	var (
		record ports.GameRecord
		ok     bool
	)
	r.store.read(ctx, func() {
		record, ok = r.store.games[sessionID]
	})
	if !ok {
		return ports.GameRecord{}, ports.ErrNotFound
	}
	return record, nil
}

func (r GameRepo) SaveWithVersion(ctx context.Context, record ports.GameRecord, expectedVersion int64) error {
	return r.store.write(ctx, func() (func(), error) {
		current, ok := r.store.games[record.SessionID]
		if !ok {
			if expectedVersion != 0 {
				return nil, ports.ErrConflict
			}
			r.store.games[record.SessionID] = record
			return func() { delete(r.store.games, record.SessionID) }, nil
		}
		if current.Version != expectedVersion {
			return nil, ports.ErrConflict
		}
		r.store.games[record.SessionID] = record
		return func() { r.store.games[record.SessionID] = current }, nil
	})
}
