package memory

import (
	"context"
	"sync"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

type Store struct {
	mu          sync.RWMutex
	games       map[string]ports.GameRecord
	execution   map[string]ports.ActionExecutionRecord
	events      map[string][]realm.DomainEvent
	credentials map[string]ports.SessionCredentialRecord
}

func NewStore() *Store {
	return &Store{
		games:       make(map[string]ports.GameRecord),
		execution:   make(map[string]ports.ActionExecutionRecord),
		events:      make(map[string][]realm.DomainEvent),
		credentials: make(map[string]ports.SessionCredentialRecord),
	}
}

func execKey(sessionID, key string) string {
	return sessionID + "::" + key
}

func (s *Store) SeedGame(record ports.GameRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[record.SessionID] = record
}

// read runs fn under the read lock unless ctx already holds the store lock
// through a transaction.
func (s *Store) read(ctx context.Context, fn func()) {
	if txFrom(ctx) != nil {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// write runs fn under the write lock, or inside the current transaction.
// fn returns the undo step applied if the transaction fails.
func (s *Store) write(ctx context.Context, fn func() (undo func(), err error)) error {
	if t := txFrom(ctx); t != nil {
		undo, err := fn()
		if err == nil && undo != nil {
			t.undo = append(t.undo, undo)
		}
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fn()
	return err
}
