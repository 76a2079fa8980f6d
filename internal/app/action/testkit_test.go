package action

import (
	"context"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubGameRepo struct {
	bySession map[string]ports.GameRecord
	saves     int
}

func (r *stubGameRepo) GetBySessionID(_ context.Context, sessionID string) (ports.GameRecord, error) {
	record, ok := r.bySession[sessionID]
	if !ok {
		return ports.GameRecord{}, ports.ErrNotFound
	}
	return record, nil
}

func (r *stubGameRepo) SaveWithVersion(_ context.Context, record ports.GameRecord, expectedVersion int64) error {
	current, ok := r.bySession[record.SessionID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
	} else if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.bySession[record.SessionID] = record
	r.saves++
	return nil
}

type conflictOnSaveGameRepo struct {
	stubGameRepo
}

func (r *conflictOnSaveGameRepo) SaveWithVersion(_ context.Context, _ ports.GameRecord, _ int64) error {
	return ports.ErrConflict
}

type stubActionRepo struct {
	byKey map[string]ports.ActionExecutionRecord
}

func (r *stubActionRepo) GetByIdempotencyKey(_ context.Context, sessionID, key string) (*ports.ActionExecutionRecord, error) {
	record, ok := r.byKey[sessionID+"|"+key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := record
	return &copy, nil
}

func (r *stubActionRepo) SaveExecution(_ context.Context, execution ports.ActionExecutionRecord) error {
	r.byKey[execution.SessionID+"|"+execution.IdempotencyKey] = execution
	return nil
}

type stubEventRepo struct {
	events []realm.DomainEvent
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []realm.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListBySessionID(_ context.Context, _ string, limit int) ([]realm.DomainEvent, error) {
	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]realm.DomainEvent, limit)
	copy(out, r.events[:limit])
	return out, nil
}

type stubActionMetrics struct {
	successCalls  int
	rejectedCalls int
	conflictCalls int
	failureCalls  int
	lastResult    realm.ResultCode
	lastReason    string
}

func (m *stubActionMetrics) RecordSuccess(resultCode realm.ResultCode) {
	m.successCalls++
	m.lastResult = resultCode
}

func (m *stubActionMetrics) RecordRejected(reason string) {
	m.rejectedCalls++
	m.lastReason = reason
}

func (m *stubActionMetrics) RecordConflict() {
	m.conflictCalls++
}

func (m *stubActionMetrics) RecordFailure() {
	m.failureCalls++
}

type fixedPicker struct {
	kind realm.BiomeKind
}

func (p fixedPicker) PickBiome(_, _ int, _ []realm.BiomeKind) realm.BiomeKind {
	return p.kind
}

var testNow = time.Unix(1700000000, 0).UTC()

type fixture struct {
	uc      UseCase
	games   *stubGameRepo
	actions *stubActionRepo
	events  *stubEventRepo
	metrics *stubActionMetrics
}

// newFixture seeds session "s-1" saved at testNow with the given mutation
// applied to a fresh game.
func newFixture(mutate func(*realm.State)) fixture {
	engine := realm.NewEngine(realm.DefaultTuning(), fixedPicker{kind: realm.BiomeForest})
	state := engine.NewGame()
	if mutate != nil {
		mutate(state)
		engine.Recompute(state)
	}
	games := &stubGameRepo{bySession: map[string]ports.GameRecord{
		"s-1": {SessionID: "s-1", Snapshot: engine.Snapshot(state), Version: 1, UpdatedAt: testNow},
	}}
	actions := &stubActionRepo{byKey: map[string]ports.ActionExecutionRecord{}}
	events := &stubEventRepo{}
	metrics := &stubActionMetrics{}
	return fixture{
		uc: UseCase{
			TxManager:  stubTxManager{},
			Games:      games,
			ActionRepo: actions,
			EventRepo:  events,
			Metrics:    metrics,
			Engine:     engine,
			Now:        func() time.Time { return testNow },
		},
		games:   games,
		actions: actions,
		events:  events,
		metrics: metrics,
	}
}
