package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

func TestGameRepo_OptimisticVersion(t *testing.T) {
	store := NewStore()
	repo := NewGameRepo(store)
	ctx := context.Background()

	if err := repo.SaveWithVersion(ctx, ports.GameRecord{SessionID: "s-1", Version: 1}, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, ports.GameRecord{SessionID: "s-1", Version: 2}, 5); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := repo.SaveWithVersion(ctx, ports.GameRecord{SessionID: "s-1", Version: 2}, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetBySessionID(ctx, "s-1")
	if err != nil || got.Version != 2 {
		t.Fatalf("get mismatch: version=%d err=%v", got.Version, err)
	}
	if _, err := repo.GetBySessionID(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	games := NewGameRepo(store)
	creds := NewCredentialRepo(store)
	events := NewEventRepo(store)
	ctx := context.Background()
	store.SeedGame(ports.GameRecord{SessionID: "s-0", Version: 3})

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := creds.Create(txCtx, ports.SessionCredentialRecord{SessionID: "s-1"}); err != nil {
			return err
		}
		if err := games.SaveWithVersion(txCtx, ports.GameRecord{SessionID: "s-1", Version: 1}, 0); err != nil {
			return err
		}
		if err := games.SaveWithVersion(txCtx, ports.GameRecord{SessionID: "s-0", Version: 4}, 3); err != nil {
			return err
		}
		if err := events.Append(txCtx, "s-1", []realm.DomainEvent{{Type: realm.EventGameStarted}}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := creds.GetBySessionID(ctx, "s-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("credential survived rollback")
	}
	if _, err := games.GetBySessionID(ctx, "s-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("game survived rollback")
	}
	if got, _ := games.GetBySessionID(ctx, "s-0"); got.Version != 3 {
		t.Fatalf("update survived rollback: version=%d", got.Version)
	}
	if _, err := events.ListBySessionID(ctx, "s-1", 0); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("events survived rollback")
	}
}

func TestEventRepo_NewestFirstWithLimit(t *testing.T) {
	store := NewStore()
	repo := NewEventRepo(store)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		evt := realm.DomainEvent{Type: realm.EventResourcesSold, OccurredAt: time.Unix(int64(i), 0)}
		if err := repo.Append(ctx, "s-1", []realm.DomainEvent{evt}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	got, err := repo.ListBySessionID(ctx, "s-1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].OccurredAt.Unix() != 4 || got[1].OccurredAt.Unix() != 3 {
		t.Fatalf("order mismatch: %+v", got)
	}
}

func TestActionExecutionRepo_RejectsDuplicateKey(t *testing.T) {
	repo := NewActionExecutionRepo(NewStore())
	ctx := context.Background()
	rec := ports.ActionExecutionRecord{SessionID: "s-1", IdempotencyKey: "k", IntentType: "sell"}
	if err := repo.SaveExecution(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveExecution(ctx, rec); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	got, err := repo.GetByIdempotencyKey(ctx, "s-1", "k")
	if err != nil || got.IntentType != "sell" {
		t.Fatalf("get mismatch: %+v err=%v", got, err)
	}
}

func TestStore_ConcurrentReadsAndTransactions(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	games := NewGameRepo(store)
	store.SeedGame(ports.GameRecord{SessionID: "s-1", Version: 1})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(context.Background(), func(txCtx context.Context) error {
				cur, err := games.GetBySessionID(txCtx, "s-1")
				if err != nil {
					return err
				}
				cur.Version++
				return games.SaveWithVersion(txCtx, cur, cur.Version-1)
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = games.GetBySessionID(context.Background(), "s-1")
		}()
	}
	wg.Wait()
	got, _ := games.GetBySessionID(context.Background(), "s-1")
	if got.Version != 9 {
		t.Fatalf("version mismatch: got=%d want=9", got.Version)
	}
}
