package status

import (
	"context"
	"errors"
	"strings"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/app/session"
	"idlarz/internal/domain/realm"
)

var ErrInvalidRequest = errors.New("invalid status request")

// UseCase reports the session as it would look if settled now. Nothing is
// written; the next action settles the same interval for real.
type UseCase struct {
	Games  ports.GameRepository
	Engine realm.Engine
	Now    func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || u.Games == nil {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	loaded, err := session.Load(ctx, u.Games, u.Engine, req.SessionID)
	if err != nil {
		return Response{}, err
	}
	settled := loaded.Settle(u.Engine, now)
	return Response{
		View:          u.Engine.View(loaded.State),
		Version:       loaded.Record.Version,
		PendingMillis: settled.ElapsedMillis,
		ServerTime:    now.Unix(),
	}, nil
}
