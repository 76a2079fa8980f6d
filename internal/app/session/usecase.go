package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

const (
	CredentialStatusActive = "active"
)

var (
	ErrInvalidRequest     = errors.New("invalid session request")
	ErrInvalidCredentials = errors.New("invalid session credentials")
)

type RegisterRequest struct {
	PlayerName string
}

type RegisterResponse struct {
	SessionID  string     `json:"session_id"`
	SessionKey string     `json:"session_key"`
	IssuedAt   string     `json:"issued_at"`
	View       realm.View `json:"view"`
}

type VerifyRequest struct {
	SessionID  string
	SessionKey string
}

type RegisterUseCase struct {
	Credentials ports.SessionCredentialRepository
	Games       ports.GameRepository
	Events      ports.EventRepository
	TxManager   ports.TxManager
	Engine      realm.Engine
	Now         func() time.Time
}

type VerifyUseCase struct {
	Credentials ports.SessionCredentialRepository
}

func (u RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil || u.Games == nil || u.TxManager == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	state := u.Engine.NewGame()
	if name := strings.TrimSpace(req.PlayerName); name != "" {
		if _, err := u.Engine.SetPlayerName(state, name); err != nil {
			return RegisterResponse{}, ErrInvalidRequest
		}
	}

	for i := 0; i < 3; i++ {
		sessionID := uuid.NewString()
		sessionKey, err := randomToken(32)
		if err != nil {
			return RegisterResponse{}, err
		}
		salt, err := randomBytes(16)
		if err != nil {
			return RegisterResponse{}, err
		}
		hash := credentialHash(salt, sessionKey)

		err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			if err := u.Credentials.Create(txCtx, ports.SessionCredentialRecord{
				SessionID: sessionID,
				KeySalt:   salt,
				KeyHash:   hash,
				Status:    CredentialStatusActive,
				CreatedAt: now,
			}); err != nil {
				return err
			}
			seed := ports.GameRecord{
				SessionID: sessionID,
				Snapshot:  u.Engine.Snapshot(state),
				Version:   1,
				UpdatedAt: now,
			}
			if err := u.Games.SaveWithVersion(txCtx, seed, 0); err != nil {
				return err
			}
			if u.Events == nil {
				return nil
			}
			return u.Events.Append(txCtx, sessionID, []realm.DomainEvent{{
				Type:       realm.EventGameStarted,
				OccurredAt: now,
				Payload:    map[string]any{"session_id": sessionID, "player_name": state.PlayerName},
			}})
		})
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return RegisterResponse{}, err
		}
		return RegisterResponse{
			SessionID:  sessionID,
			SessionKey: sessionKey,
			IssuedAt:   now.Format(time.RFC3339),
			View:       u.Engine.View(state),
		}, nil
	}

	return RegisterResponse{}, ports.ErrConflict
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.SessionKey = strings.TrimSpace(req.SessionKey)
	if req.SessionID == "" || req.SessionKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetBySessionID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if cred.Status != CredentialStatusActive {
		return ErrInvalidCredentials
	}

	got := credentialHash(cred.KeySalt, req.SessionKey)
	if subtle.ConstantTimeCompare(got, cred.KeyHash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
