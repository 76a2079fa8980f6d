package action

import (
	"context"
	"errors"
	"strings"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/app/session"
	"idlarz/internal/domain/realm"
)

type UseCase struct {
	TxManager  ports.TxManager
	Games      ports.GameRepository
	ActionRepo ports.ActionExecutionRepository
	EventRepo  ports.EventRepository
	Metrics    ports.ActionMetrics
	Engine     realm.Engine
	Now        func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.Intent = normalizeIntent(req.Intent)
	if req.SessionID == "" || u.Games == nil || u.TxManager == nil {
		return Response{}, ErrInvalidRequest
	}
	handler, ok := intentRegistry()[req.Intent.Type]
	if !ok {
		return Response{}, ErrInvalidRequest
	}
	if !handler.Validate(req.Intent) {
		return Response{}, ErrInvalidActionParams
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if replay, ok, err := u.replayIdempotent(txCtx, req); err != nil || ok {
			out = replay
			return err
		}

		loaded, err := session.Load(txCtx, u.Games, u.Engine, req.SessionID)
		if err != nil {
			return err
		}
		settled := loaded.Settle(u.Engine, now)

		result, err := handler.Apply(u.Engine, loaded.State, req.Intent)
		if err != nil {
			return rejected(req.Intent.Type, err)
		}
		// Acquisitions award experience outside Tick; a zero step hands out
		// the stat points for any level it crossed.
		post := u.Engine.Tick(loaded.State, 0)
		levels := settled.LevelsGained + post.LevelsGained

		next := loaded.Next(u.Engine, now)
		if err := u.Games.SaveWithVersion(txCtx, next, loaded.Record.Version); err != nil {
			return err
		}

		events := u.buildEvents(req, loaded, result, levels, settled.ElapsedMillis, now)
		code := realm.ResultOK
		if levels > 0 {
			code = realm.ResultLevelUp
		}
		out = Response{
			SettledMillis: settled.ElapsedMillis,
			LevelsGained:  levels,
			Version:       next.Version,
			View:          u.Engine.View(loaded.State),
			Events:        events,
			Outcome:       result.Outcome,
			ResultCode:    code,
		}

		if u.ActionRepo != nil && req.IdempotencyKey != "" {
			if err := u.ActionRepo.SaveExecution(txCtx, ports.ActionExecutionRecord{
				SessionID:      req.SessionID,
				IdempotencyKey: req.IdempotencyKey,
				IntentType:     req.Intent.Type,
				ElapsedMillis:  settled.ElapsedMillis,
				Result: ports.ActionResult{
					View:       out.View,
					Events:     events,
					ResultCode: code,
					Outcome:    result.Outcome,
				},
				AppliedAt: now,
			}); err != nil {
				return err
			}
		}
		if u.EventRepo != nil {
			return u.EventRepo.Append(txCtx, req.SessionID, events)
		}
		return nil
	})
	if err != nil {
		u.recordError(err)
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(out.ResultCode)
	}
	return out, nil
}

func (u UseCase) replayIdempotent(ctx context.Context, req Request) (Response, bool, error) {
	if u.ActionRepo == nil || req.IdempotencyKey == "" {
		return Response{}, false, nil
	}
	exec, err := u.ActionRepo.GetByIdempotencyKey(ctx, req.SessionID, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{}, false, nil
		}
		return Response{}, false, err
	}
	if exec == nil {
		return Response{}, false, nil
	}
	if exec.IntentType != req.Intent.Type {
		return Response{}, false, ErrInvalidRequest
	}
	return Response{
		SettledMillis: exec.ElapsedMillis,
		View:          exec.Result.View,
		Events:        exec.Result.Events,
		Outcome:       exec.Result.Outcome,
		ResultCode:    exec.Result.ResultCode,
		Replayed:      true,
	}, true, nil
}

func (u UseCase) buildEvents(req Request, loaded session.Loaded, result applied, levels int, settledMillis float64, now time.Time) []realm.DomainEvent {
	after := stateAfter(loaded.State)
	events := make([]realm.DomainEvent, 0, 3)
	if loaded.Reset {
		events = append(events, realm.DomainEvent{
			Type:       realm.EventGameReset,
			OccurredAt: now,
			Payload:    map[string]any{"previous_version": loaded.Record.Version},
		})
	}
	payload := map[string]any{
		"intent":      req.Intent.Type,
		"settled_ms":  settledMillis,
		"state_after": after,
	}
	for k, v := range result.Outcome {
		payload[k] = v
	}
	events = append(events, realm.DomainEvent{Type: result.EventType, OccurredAt: now, Payload: payload})
	if levels > 0 {
		events = append(events, realm.DomainEvent{
			Type:       realm.EventLevelUp,
			OccurredAt: now,
			Payload: map[string]any{
				"levels_gained":    levels,
				"level":            loaded.State.Level.Level,
				"available_points": loaded.State.Stats.AvailablePoints,
			},
		})
	}
	for i := range events {
		events[i].Payload["session_id"] = req.SessionID
		if req.IdempotencyKey != "" {
			events[i].Payload["idempotency_key"] = req.IdempotencyKey
		}
	}
	return events
}

// stateAfter is the compact summary replay uses to rebuild the latest state.
func stateAfter(s *realm.State) map[string]any {
	out := map[string]any{
		"owned_parcels": s.Grid.OwnedCount(),
		"level":         s.Level.Level,
	}
	for _, kind := range realm.ResourceKinds() {
		out[string(kind)] = s.Resources.Get(kind)
	}
	if castle, ok := s.Grid.Castle(); ok {
		out["castle_level"] = castle.Level
	}
	return out
}

func (u UseCase) recordError(err error) {
	if u.Metrics == nil {
		return
	}
	var rej *RejectedError
	switch {
	case errors.As(err, &rej):
		u.Metrics.RecordRejected(rej.Code())
	case errors.Is(err, ports.ErrConflict):
		u.Metrics.RecordConflict()
	default:
		u.Metrics.RecordFailure()
	}
}
