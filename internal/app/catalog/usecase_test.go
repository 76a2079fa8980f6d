package catalog

import (
	"testing"

	"idlarz/internal/domain/realm"
)

func TestUseCase_BuildsTables(t *testing.T) {
	out := UseCase{Tuning: realm.DefaultTuning()}.Execute(Request{})

	if len(out.Biomes) != 11 || out.Biomes[0].Kind != realm.BiomeCastle {
		t.Fatalf("biome table mismatch: %d entries", len(out.Biomes))
	}
	if len(out.Animals) != 4 {
		t.Fatalf("animal table mismatch: %d entries", len(out.Animals))
	}
	if len(out.CastleCosts) != 9 || out.CastleCosts[0].Cost != realm.CastleUpgradeCost(1) {
		t.Fatalf("castle table mismatch: %+v", out.CastleCosts)
	}
	if len(out.ParcelCosts) != defaultParcelRows || out.ParcelCosts[0] != (ParcelCostRow{Owned: 1, Cost: 110}) {
		t.Fatalf("parcel table mismatch: first=%+v len=%d", out.ParcelCosts[0], len(out.ParcelCosts))
	}
	for i := 1; i < len(out.ParcelCosts); i++ {
		if out.ParcelCosts[i].Cost < out.ParcelCosts[i-1].Cost {
			t.Fatalf("parcel cost decreased at owned=%d", out.ParcelCosts[i].Owned)
		}
	}
	for _, p := range out.Market {
		if p.Buy != p.Sell*2 {
			t.Fatalf("buy price mismatch for %s: %+v", p.Kind, p)
		}
	}
	if len(out.Intents) != 8 {
		t.Fatalf("intent list mismatch: %v", out.Intents)
	}
}

func TestUseCase_CapsParcelRowsAtGridSize(t *testing.T) {
	tu := realm.DefaultTuning()
	tu.GridWidth, tu.GridHeight = 3, 3
	out := UseCase{Tuning: tu}.Execute(Request{ParcelRows: 500})
	if len(out.ParcelCosts) != 9 {
		t.Fatalf("row cap mismatch: got=%d want=9", len(out.ParcelCosts))
	}
}
