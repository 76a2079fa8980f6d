// Package inmemory counts action outcomes for the ops KPI endpoint.
package inmemory

import (
	"sync"
	"time"

	"idlarz/internal/domain/realm"
)

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionRejected uint64            `json:"action_rejected"`
	ActionConflict uint64            `json:"action_conflict"`
	ActionFailure  uint64            `json:"action_failure"`
	ByResultCode   map[string]uint64 `json:"by_result_code"`
	ByRejection    map[string]uint64 `json:"by_rejection"`
	UptimeSeconds  int64             `json:"uptime_seconds"`
}

type Recorder struct {
	mu          sync.Mutex
	startedAt   time.Time
	now         func() time.Time
	success     uint64
	rejected    uint64
	conflict    uint64
	failure     uint64
	byResult    map[string]uint64
	byRejection map[string]uint64
}

func NewRecorder() *Recorder {
	return NewRecorderWithClock(time.Now)
}

func NewRecorderWithClock(now func() time.Time) *Recorder {
	return &Recorder{
		startedAt:   now(),
		now:         now,
		byResult:    map[string]uint64{},
		byRejection: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(resultCode realm.ResultCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byResult[string(resultCode)]++
}

// RecordRejected counts a domain rejection under its reason code.
func (r *Recorder) RecordRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byResult[string(realm.ResultRejected)]++
	r.byRejection[reason]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionRejected: r.rejected,
		ActionConflict: r.conflict,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.rejected + r.conflict + r.failure,
		ByResultCode:   copyCounts(r.byResult),
		ByRejection:    copyCounts(r.byRejection),
		UptimeSeconds:  int64(r.now().Sub(r.startedAt) / time.Second),
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
