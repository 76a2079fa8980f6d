package ports

import (
	"context"
	"time"

	"idlarz/internal/domain/realm"
)

// GameRecord is one persisted session. Version starts at 1 and grows by one
// on every accepted write.
type GameRecord struct {
	SessionID string
	Snapshot  realm.Snapshot
	Version   int64
	UpdatedAt time.Time
}

type ActionResult struct {
	View       realm.View
	Events     []realm.DomainEvent
	ResultCode realm.ResultCode
	Outcome    map[string]any
}

type ActionExecutionRecord struct {
	SessionID      string
	IdempotencyKey string
	IntentType     string
	ElapsedMillis  float64
	Result         ActionResult
	AppliedAt      time.Time
}

type GameRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (GameRecord, error)
	SaveWithVersion(ctx context.Context, record GameRecord, expectedVersion int64) error
}

type ActionExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*ActionExecutionRecord, error)
	SaveExecution(ctx context.Context, execution ActionExecutionRecord) error
}

type EventRepository interface {
	Append(ctx context.Context, sessionID string, events []realm.DomainEvent) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]realm.DomainEvent, error)
}

type SessionCredentialRecord struct {
	SessionID string
	KeySalt   []byte
	KeyHash   []byte
	Status    string
	CreatedAt time.Time
}

type SessionCredentialRepository interface {
	Create(ctx context.Context, credential SessionCredentialRecord) error
	GetBySessionID(ctx context.Context, sessionID string) (SessionCredentialRecord, error)
}
