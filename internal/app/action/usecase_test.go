package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"idlarz/internal/app/ports"
	"idlarz/internal/domain/realm"
)

func TestUseCase_AcquireParcelPersistsAndEmitsEvent(t *testing.T) {
	f := newFixture(nil)

	out, err := f.uc.Execute(context.Background(), Request{
		SessionID: "s-1",
		Intent:    Intent{Type: "Acquire_Parcel", X: 8, Y: 7},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.ResultCode != realm.ResultOK || out.Version != 2 {
		t.Fatalf("unexpected response: code=%s version=%d", out.ResultCode, out.Version)
	}
	if out.View.OwnedParcels != 2 || out.View.Resources.Gold != 40 {
		t.Fatalf("view mismatch: owned=%d gold=%v", out.View.OwnedParcels, out.View.Resources.Gold)
	}
	saved := f.games.bySession["s-1"]
	if saved.Version != 2 || saved.Snapshot.Grid.OwnedCount() != 2 {
		t.Fatalf("saved record mismatch: version=%d owned=%d", saved.Version, saved.Snapshot.Grid.OwnedCount())
	}
	if len(f.events.events) != 1 || f.events.events[0].Type != realm.EventParcelAcquired {
		t.Fatalf("events mismatch: %+v", f.events.events)
	}
	payload := f.events.events[0].Payload
	if payload["session_id"] != "s-1" || payload["cost"] != 110 || payload["biome"] != realm.BiomeForest {
		t.Fatalf("payload mismatch: %+v", payload)
	}
	if f.metrics.successCalls != 1 || f.metrics.lastResult != realm.ResultOK {
		t.Fatalf("metrics mismatch: %+v", f.metrics)
	}
}

func TestUseCase_SettlesElapsedServerTimeBeforeAction(t *testing.T) {
	f := newFixture(nil)
	f.uc.Now = func() time.Time { return testNow.Add(2 * time.Minute) }

	out, err := f.uc.Execute(context.Background(), Request{
		SessionID: "s-1",
		Intent:    Intent{Type: IntentSell, Resource: realm.ResourceWood, Amount: 10},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.SettledMillis != 120000 {
		t.Fatalf("settled mismatch: got=%v want=120000", out.SettledMillis)
	}
	if got, want := out.View.Resources.Wood, 50.0; got != want {
		t.Fatalf("wood mismatch: got=%v want=%v", got, want)
	}
	if got, want := out.View.Resources.Gold, 150+120+10.0; got != want {
		t.Fatalf("gold mismatch: got=%v want=%v", got, want)
	}
	if got := f.games.bySession["s-1"].UpdatedAt; !got.Equal(testNow.Add(2 * time.Minute)) {
		t.Fatalf("updated_at not advanced: %v", got)
	}
}

func TestUseCase_RejectionSavesNothing(t *testing.T) {
	f := newFixture(nil)
	before := f.games.bySession["s-1"]

	_, err := f.uc.Execute(context.Background(), Request{
		SessionID: "s-1",
		Intent:    Intent{Type: IntentAcquireParcel, X: 0, Y: 0},
	})
	if !errors.Is(err, ErrActionRejected) || !errors.Is(err, realm.ErrNotAdjacent) {
		t.Fatalf("expected rejection wrapping ErrNotAdjacent, got %v", err)
	}
	var rej *RejectedError
	if !errors.As(err, &rej) || rej.Code() != "NOT_ADJACENT" || rej.IntentType != IntentAcquireParcel {
		t.Fatalf("rejection details mismatch: %+v", rej)
	}
	if f.games.saves != 0 || f.games.bySession["s-1"].Version != before.Version {
		t.Fatalf("rejected action was saved")
	}
	if len(f.events.events) != 0 {
		t.Fatalf("rejected action emitted events: %+v", f.events.events)
	}
	if f.metrics.rejectedCalls != 1 || f.metrics.lastReason != "NOT_ADJACENT" {
		t.Fatalf("metrics mismatch: %+v", f.metrics)
	}
}

func TestUseCase_IdempotentReplay(t *testing.T) {
	f := newFixture(nil)
	req := Request{SessionID: "s-1", IdempotencyKey: "k-1", Intent: Intent{Type: IntentAcquireParcel, X: 8, Y: 7}}

	first, err := f.uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("first execute: %v", err)
	}
	second, err := f.uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}
	if !second.Replayed || first.Replayed {
		t.Fatalf("replay flags mismatch: first=%v second=%v", first.Replayed, second.Replayed)
	}
	if second.View.OwnedParcels != first.View.OwnedParcels || f.games.saves != 1 {
		t.Fatalf("idempotency broken: owned=%d saves=%d", second.View.OwnedParcels, f.games.saves)
	}
	if len(f.events.events) != 1 {
		t.Fatalf("replay appended events: %d", len(f.events.events))
	}

	req.Intent = Intent{Type: IntentUpgradeCastle}
	if _, err := f.uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("reusing a key for another intent should fail, got %v", err)
	}
}

func TestUseCase_LevelUpFromAcquisitionGrantsPoints(t *testing.T) {
	f := newFixture(func(s *realm.State) { s.Resources.Experience = 995 })

	out, err := f.uc.Execute(context.Background(), Request{
		SessionID: "s-1",
		Intent:    Intent{Type: IntentAcquireParcel, X: 8, Y: 7},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.ResultCode != realm.ResultLevelUp || out.LevelsGained != 1 {
		t.Fatalf("level-up mismatch: code=%s gained=%d", out.ResultCode, out.LevelsGained)
	}
	if out.View.Stats.AvailablePoints != 3 || out.View.Level.Level != 2 {
		t.Fatalf("stats mismatch: points=%d level=%d", out.View.Stats.AvailablePoints, out.View.Level.Level)
	}
	if len(out.Events) != 2 || out.Events[1].Type != realm.EventLevelUp {
		t.Fatalf("expected level_up event, got %+v", out.Events)
	}
}

func TestUseCase_ResetsInvalidStoredGame(t *testing.T) {
	f := newFixture(nil)
	record := f.games.bySession["s-1"]
	record.Snapshot.Version = 42
	record.Version = 7
	f.games.bySession["s-1"] = record

	out, err := f.uc.Execute(context.Background(), Request{
		SessionID: "s-1",
		Intent:    Intent{Type: IntentSetName, Name: "Tristan"},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Version != 8 || out.View.PlayerName != "Tristan" || out.View.OwnedParcels != 1 {
		t.Fatalf("unexpected response after reset: %+v", out)
	}
	if out.Events[0].Type != realm.EventGameReset || out.Events[1].Type != realm.EventPlayerRenamed {
		t.Fatalf("events mismatch: %+v", out.Events)
	}
}

func TestUseCase_ValidatesRequests(t *testing.T) {
	f := newFixture(nil)
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{name: "missing session", req: Request{Intent: Intent{Type: IntentUpgradeCastle}}, want: ErrInvalidRequest},
		{name: "unknown intent", req: Request{SessionID: "s-1", Intent: Intent{Type: "fly"}}, want: ErrInvalidRequest},
		{name: "negative coordinates", req: Request{SessionID: "s-1", Intent: Intent{Type: IntentAcquireParcel, X: -1}}, want: ErrInvalidActionParams},
		{name: "sell unknown resource", req: Request{SessionID: "s-1", Intent: Intent{Type: IntentSell, Resource: "mana", Amount: 1}}, want: ErrInvalidActionParams},
		{name: "buy zero", req: Request{SessionID: "s-1", Intent: Intent{Type: IntentBuy, Resource: realm.ResourceWood}}, want: ErrInvalidActionParams},
		{name: "blank name", req: Request{SessionID: "s-1", Intent: Intent{Type: IntentSetName, Name: " "}}, want: ErrInvalidActionParams},
		{name: "missing stat", req: Request{SessionID: "s-1", Intent: Intent{Type: IntentAllocateStat}}, want: ErrInvalidActionParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.uc.Execute(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("error mismatch: got=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestUseCase_UnknownSessionIsNotFound(t *testing.T) {
	f := newFixture(nil)
	_, err := f.uc.Execute(context.Background(), Request{SessionID: "nope", Intent: Intent{Type: IntentUpgradeCastle}})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.metrics.failureCalls != 1 {
		t.Fatalf("failure not recorded: %+v", f.metrics)
	}
}

func TestUseCase_RecordsConflict(t *testing.T) {
	f := newFixture(nil)
	conflict := &conflictOnSaveGameRepo{stubGameRepo: *f.games}
	f.uc.Games = conflict

	_, err := f.uc.Execute(context.Background(), Request{SessionID: "s-1", Intent: Intent{Type: IntentSetName, Name: "Kay"}})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if f.metrics.conflictCalls != 1 {
		t.Fatalf("conflict not recorded: %+v", f.metrics)
	}
}

func TestUseCase_EveryIntentRoundTrips(t *testing.T) {
	f := newFixture(func(s *realm.State) {
		s.Resources = realm.Resources{Gold: 1e6, Wood: 1e4, Stone: 1e4, Coal: 1e4, Food: 1e4}
		s.Stats.AvailablePoints = 1
	})
	f.uc.Engine.Picker = fixedPicker{kind: realm.BiomeGrounds}
	steps := []Intent{
		{Type: IntentAcquireParcel, X: 8, Y: 7},
		{Type: IntentConvertGrounds, X: 8, Y: 7, Building: realm.BiomeSawmill},
		{Type: IntentUpgradeCastle},
		{Type: IntentAllocateStat, Stat: realm.StatDexterity},
		{Type: IntentSell, Resource: realm.ResourceCoal, Amount: 5},
		{Type: IntentBuy, Resource: realm.ResourceMeat, Amount: 5},
		{Type: IntentPurchaseAnimal, Animal: realm.AnimalPig},
		{Type: IntentSetName, Name: "Lancelot"},
	}
	for i, in := range steps {
		out, err := f.uc.Execute(context.Background(), Request{SessionID: "s-1", Intent: in})
		if err != nil {
			t.Fatalf("step %d (%s): %v", i, in.Type, err)
		}
		if out.Version != int64(i+2) {
			t.Fatalf("step %d version mismatch: got=%d want=%d", i, out.Version, i+2)
		}
	}
	if len(SupportedIntents()) != len(intentRegistry()) {
		t.Fatalf("registry and supported list disagree")
	}
	final := f.games.bySession["s-1"].Snapshot
	if final.PlayerName != "Lancelot" || final.FarmLevels[realm.AnimalPig] != 1 || final.Stats.Base.Dexterity != 1 {
		t.Fatalf("final snapshot mismatch: %+v", final)
	}
	if p := final.Grid.Parcels[7*15+8]; p.Biome != realm.BiomeSawmill {
		t.Fatalf("grounds not converted: %s", p.Biome)
	}
}
