package memory

import (
	"context"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, events []realm.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.store.write(ctx, func() (func(), error) {
		before := len(r.store.events[sessionID])
		r.store.events[sessionID] = append(r.store.events[sessionID], events...)
		return func() { r.store.events[sessionID] = r.store.events[sessionID][:before] }, nil
	})
}

// ListBySessionID returns the newest events first, at most limit when limit > 0.
func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]realm.DomainEvent, error) {
	var out []realm.DomainEvent
	r.store.read(ctx, func() {
		stored := r.store.events[sessionID]
		n := len(stored)
		if limit > 0 && limit < n {
			n = limit
		}
		out = make([]realm.DomainEvent, 0, n)
		for i := len(stored) - 1; i >= 0 && len(out) < n; i-- {
			out = append(out, stored[i])
		}
	})
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
