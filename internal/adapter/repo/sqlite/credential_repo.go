package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"idlarz/internal/app/ports"
)

type credentialRow struct {
	SessionID   string `db:"session_id"`
	KeySalt     []byte `db:"key_salt"`
	KeyHash     []byte `db:"key_hash"`
	Status      string `db:"status"`
	CreatedAtMs int64  `db:"created_at_ms"`
}

type CredentialRepo struct {
	db *DB
}

func NewCredentialRepo(db *DB) CredentialRepo {
	return CredentialRepo{db: db}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.SessionCredentialRecord) error {
	_, err := r.db.q(ctx).ExecContext(ctx,
		"INSERT INTO session_credentials (session_id, key_salt, key_hash, status, created_at_ms) VALUES (?, ?, ?, ?, ?)",
		credential.SessionID, credential.KeySalt, credential.KeyHash, credential.Status, credential.CreatedAt.UnixMilli())
	if isUniqueViolation(err) {
		return ports.ErrConflict
	}
	return err
}

func (r CredentialRepo) GetBySessionID(ctx context.Context, sessionID string) (ports.SessionCredentialRecord, error) {
	var row credentialRow
	err := r.db.q(ctx).GetContext(ctx, &row,
		"SELECT session_id, key_salt, key_hash, status, created_at_ms FROM session_credentials WHERE session_id = ?", sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.SessionCredentialRecord{}, ports.ErrNotFound
		}
		return ports.SessionCredentialRecord{}, err
	}
	return ports.SessionCredentialRecord{
		SessionID: row.SessionID,
		KeySalt:   row.KeySalt,
		KeyHash:   row.KeyHash,
		Status:    row.Status,
		CreatedAt: time.UnixMilli(row.CreatedAtMs).UTC(),
	}, nil
}
