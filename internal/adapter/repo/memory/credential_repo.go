package memory

import (
	"context"

	"idlarz/internal/app/ports"
)

type CredentialRepo struct {
	store *Store
}

func NewCredentialRepo(store *Store) CredentialRepo {
	return CredentialRepo{store: store}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.SessionCredentialRecord) error {
	return r.store.write(ctx, func() (func(), error) {
		if _, exists := r.store.credentials[credential.SessionID]; exists {
			return nil, ports.ErrConflict
		}
		r.store.credentials[credential.SessionID] = credential
		return func() { delete(r.store.credentials, credential.SessionID) }, nil
	})
}

func (r CredentialRepo) GetBySessionID(ctx context.Context, sessionID string) (ports.SessionCredentialRecord, error) {
	var (
		cred ports.SessionCredentialRecord
		ok   bool
	)
	r.store.read(ctx, func() {
		cred, ok = r.store.credentials[sessionID]
	})
	if !ok {
		return ports.SessionCredentialRecord{}, ports.ErrNotFound
	}
	return cred, nil
}
