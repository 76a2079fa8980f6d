package replay

import (
	"context"
	"errors"
	"strings"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || u.Events == nil || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListBySessionID(ctx, req.SessionID, req.Limit)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{Events: []realm.DomainEvent{}}, nil
		}
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{Events: events, Latest: reconstruct(events)}, nil
}

func filterByTimeWindow(events []realm.DomainEvent, from, to int64) []realm.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]realm.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// reconstruct takes the newest state_after payload. Events arrive newest
// first.
func reconstruct(events []realm.DomainEvent) Summary {
	var out Summary
	for _, evt := range events {
		after, ok := evt.Payload["state_after"].(map[string]any)
		if !ok {
			continue
		}
		for _, kind := range realm.ResourceKinds() {
			out.Resources.Set(kind, num(after[string(kind)]))
		}
		out.OwnedParcels = int(num(after["owned_parcels"]))
		out.Level = int(num(after["level"]))
		out.CastleLevel = int(num(after["castle_level"]))
		return out
	}
	return out
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
