package sqliterepo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "idlarz.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testEngine() realm.Engine {
	return realm.NewEngine(realm.DefaultTuning(), realm.NewUniformPicker(1))
}

func seedRecord(sessionID string, version int64) ports.GameRecord {
	e := testEngine()
	return ports.GameRecord{
		SessionID: sessionID,
		Snapshot:  e.Snapshot(e.NewGame()),
		Version:   version,
		UpdatedAt: time.UnixMilli(500_000).UTC(),
	}
}

func TestGameRepo_SaveWithVersionAndConflict(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewGameRepo(db)

	if _, err := repo.GetBySessionID(ctx, "s1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	rec := seedRecord("s1", 1)
	rec.Snapshot.PlayerName = "Tristan"
	if err := repo.SaveWithVersion(ctx, rec, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, rec, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on duplicate create, got %v", err)
	}

	got, err := repo.GetBySessionID(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != 1 || got.Snapshot.PlayerName != "Tristan" || !got.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Fatalf("unexpected record: version=%d name=%q updated=%v", got.Version, got.Snapshot.PlayerName, got.UpdatedAt)
	}
	if err := testEngine().Validate(got.Snapshot); err != nil {
		t.Fatalf("stored snapshot no longer validates: %v", err)
	}

	next := got
	next.Version = 2
	next.Snapshot.Resources.Gold = 999
	if err := repo.SaveWithVersion(ctx, next, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, next, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}
	got, _ = repo.GetBySessionID(ctx, "s1")
	if got.Version != 2 || got.Snapshot.Resources.Gold != 999 {
		t.Fatalf("update not persisted: version=%d gold=%v", got.Version, got.Snapshot.Resources.Gold)
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestGameRepo_CorruptSnapshotStillLoads(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	logs := captureLogs(t)
	if _, err := db.conn.Exec("INSERT INTO games (session_id, snapshot, version, updated_at_ms) VALUES ('bad', '{not json', 3, 0)"); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	got, err := NewGameRepo(db).GetBySessionID(ctx, "bad")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != 3 {
		t.Fatalf("version mismatch: got=%d want=3", got.Version)
	}
	if _, reset := testEngine().RestoreOrNew(got.Snapshot); !reset {
		t.Fatalf("expected corrupt snapshot to reinitialize")
	}
	out := logs.String()
	if !strings.Contains(out, "stored snapshot failed to decode") || !strings.Contains(out, "session_id=bad") {
		t.Fatalf("expected a decode warning for session bad, got %q", out)
	}
}

func TestActionExecutionRepo_SaveAndGetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewActionExecutionRepo(db)

	rec := ports.ActionExecutionRecord{
		SessionID:      "s1",
		IdempotencyKey: "key-1",
		IntentType:     "sell",
		ElapsedMillis:  250,
		Result: ports.ActionResult{
			View:       realm.View{PlayerName: "Kay", OwnedParcels: 3},
			Events:     []realm.DomainEvent{{Type: "resources_sold", OccurredAt: time.UnixMilli(10_000).UTC()}},
			ResultCode: realm.ResultOK,
			Outcome:    map[string]any{"gold_gained": 4.0},
		},
		AppliedAt: time.UnixMilli(20_000).UTC(),
	}
	if err := repo.SaveExecution(ctx, rec); err != nil {
		t.Fatalf("save execution: %v", err)
	}
	if err := repo.SaveExecution(ctx, rec); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on duplicate key, got %v", err)
	}
	got, err := repo.GetByIdempotencyKey(ctx, "s1", "key-1")
	if err != nil {
		t.Fatalf("get execution: %v", err)
	}
	if got.IntentType != "sell" || got.ElapsedMillis != 250 || !got.AppliedAt.Equal(rec.AppliedAt) {
		t.Fatalf("unexpected execution: %+v", got)
	}
	if got.Result.View.PlayerName != "Kay" || got.Result.ResultCode != realm.ResultOK || got.Result.Outcome["gold_gained"] != 4.0 {
		t.Fatalf("unexpected result: %+v", got.Result)
	}
	if len(got.Result.Events) != 1 || got.Result.Events[0].Type != "resources_sold" {
		t.Fatalf("events mismatch: %+v", got.Result.Events)
	}
	if _, err := repo.GetByIdempotencyKey(ctx, "s1", "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepo_NewestFirstWithLimit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewEventRepo(db)

	if _, err := repo.ListBySessionID(ctx, "s1", 0); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before append, got %v", err)
	}
	if err := repo.Append(ctx, "s1", []realm.DomainEvent{
		{Type: "e-old", OccurredAt: time.UnixMilli(100_000), Payload: map[string]any{"k": "v1"}},
		{Type: "e-new", OccurredAt: time.UnixMilli(200_000), Payload: map[string]any{"k": "v2"}},
		{Type: "e-tie", OccurredAt: time.UnixMilli(200_000)},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, "s2", []realm.DomainEvent{{Type: "other", OccurredAt: time.UnixMilli(300_000)}}); err != nil {
		t.Fatalf("append other session: %v", err)
	}

	list, err := repo.ListBySessionID(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Type != "e-tie" || list[1].Type != "e-new" {
		t.Fatalf("order mismatch: %+v", list)
	}
	if list[1].Payload["k"] != "v2" || list[0].Payload != nil {
		t.Fatalf("payload mismatch: %+v", list)
	}
	all, err := repo.ListBySessionID(ctx, "s1", 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 events, got %d err=%v", len(all), err)
	}
}

func TestCredentialRepo_CreateGetAndConflict(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCredentialRepo(db)

	rec := ports.SessionCredentialRecord{
		SessionID: "s1",
		KeySalt:   []byte("salt"),
		KeyHash:   []byte("hash"),
		Status:    "active",
		CreatedAt: time.UnixMilli(1_000_000).UTC(),
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, rec); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	got, err := repo.GetBySessionID(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.KeySalt) != "salt" || string(got.KeyHash) != "hash" || got.Status != "active" {
		t.Fatalf("unexpected credential: %+v", got)
	}
	if _, err := repo.GetBySessionID(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTxManager_CommitAndRollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tx := NewTxManager(db)
	games := NewGameRepo(db)
	events := NewEventRepo(db)

	if err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := games.SaveWithVersion(txCtx, seedRecord("ok", 1), 0); err != nil {
			return err
		}
		return events.Append(txCtx, "ok", []realm.DomainEvent{{Type: "game_started", OccurredAt: time.UnixMilli(1)}})
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := games.GetBySessionID(ctx, "ok"); err != nil {
		t.Fatalf("expected committed game, got %v", err)
	}

	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := games.SaveWithVersion(txCtx, seedRecord("rb", 1), 0); err != nil {
			return err
		}
		if err := events.Append(txCtx, "rb", []realm.DomainEvent{{Type: "game_started", OccurredAt: time.UnixMilli(1)}}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	if err == nil {
		t.Fatalf("expected rollback error")
	}
	if _, err := games.GetBySessionID(ctx, "rb"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected rolled back game to be missing, got %v", err)
	}
	if _, err := events.ListBySessionID(ctx, "rb", 0); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected rolled back events to be missing, got %v", err)
	}
}
