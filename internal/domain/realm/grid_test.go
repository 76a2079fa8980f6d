package realm

import (
	"errors"
	"reflect"
	"testing"
)

func TestCreateInitialGrid_SeedsCastleAtCenter(t *testing.T) {
	g := CreateInitialGrid(15, 15, DefaultTuning())
	if got, want := len(g.Parcels), 225; got != want {
		t.Fatalf("parcel count mismatch: got=%d want=%d", got, want)
	}
	castle, ok := g.Castle()
	if !ok {
		t.Fatalf("expected castle")
	}
	if castle.X != 7 || castle.Y != 7 || castle.Level != 1 {
		t.Fatalf("unexpected castle: %+v", castle)
	}
	if castle.UpgradeCost == nil || *castle.UpgradeCost != CastleUpgradeCost(1) {
		t.Fatalf("expected level-1 upgrade cost attached, got %+v", castle.UpgradeCost)
	}
	if got := g.OwnedCount(); got != 1 {
		t.Fatalf("owned count mismatch: got=%d want=1", got)
	}
	for _, p := range g.Parcels {
		if !p.Owned && p.Biome != BiomeEmpty {
			t.Fatalf("unowned parcel (%d,%d) has biome %s", p.X, p.Y, p.Biome)
		}
	}
}

func TestCreateInitialGrid_FallsBackToDefaultSize(t *testing.T) {
	g := CreateInitialGrid(0, -3, DefaultTuning())
	if g.Width != DefaultGridWidth || g.Height != DefaultGridHeight {
		t.Fatalf("size mismatch: got=%dx%d", g.Width, g.Height)
	}
}

func TestIsAdjacentToOwned_FourNeighboursOnly(t *testing.T) {
	g := CreateInitialGrid(15, 15, DefaultTuning())
	if !g.IsAdjacentToOwned(7, 6) || !g.IsAdjacentToOwned(8, 7) {
		t.Fatalf("expected orthogonal neighbours of the castle to be adjacent")
	}
	if g.IsAdjacentToOwned(6, 6) || g.IsAdjacentToOwned(8, 8) {
		t.Fatalf("diagonal neighbours must not count as adjacent")
	}
	if g.IsAdjacentToOwned(0, 0) {
		t.Fatalf("corner must not be adjacent")
	}
}

func TestGridAcquire_Preconditions(t *testing.T) {
	cases := []struct {
		name  string
		x, y  int
		biome BiomeKind
		want  error
	}{
		{name: "out of bounds", x: -1, y: 7, biome: BiomeForest, want: ErrOutOfBounds},
		{name: "already owned", x: 7, y: 7, biome: BiomeForest, want: ErrAlreadyOwned},
		{name: "not adjacent", x: 0, y: 0, biome: BiomeForest, want: ErrNotAdjacent},
		{name: "empty biome", x: 8, y: 7, biome: BiomeEmpty, want: ErrUnknownBiome},
		{name: "unique taken", x: 8, y: 7, biome: BiomeCastle, want: ErrUniqueBiomeTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := CreateInitialGrid(15, 15, DefaultTuning())
			before := g.Clone()
			if err := g.Acquire(tc.x, tc.y, tc.biome); !errors.Is(err, tc.want) {
				t.Fatalf("error mismatch: got=%v want=%v", err, tc.want)
			}
			if !reflect.DeepEqual(g, before) {
				t.Fatalf("grid changed on rejected acquisition")
			}
		})
	}
}

func TestGridAcquire_Success(t *testing.T) {
	g := CreateInitialGrid(15, 15, DefaultTuning())
	if err := g.Acquire(8, 7, BiomeHills); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	p, _ := g.At(8, 7)
	if !p.Owned || p.Biome != BiomeHills || p.Level != 0 {
		t.Fatalf("unexpected parcel: %+v", p)
	}
	if got := g.OwnedCount(); got != 2 {
		t.Fatalf("owned count mismatch: got=%d want=2", got)
	}
	if got := g.SameBiomeNeighbours(8, 7); got != 0 {
		t.Fatalf("neighbours mismatch: got=%d want=0", got)
	}
}

func TestSelectableBiomes_ExcludesPlacedUniqueAndBuildings(t *testing.T) {
	g := CreateInitialGrid(5, 5, DefaultTuning())
	want := []BiomeKind{BiomeForest, BiomePlains, BiomeHills, BiomeSwamp, BiomeTundra, BiomeLake, BiomeGrounds}
	if got := g.SelectableBiomes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("selectable mismatch: got=%v want=%v", got, want)
	}
}

func TestRandomBiome_IgnoresPickerOutsideCandidates(t *testing.T) {
	g := CreateInitialGrid(5, 5, DefaultTuning())
	if got := g.RandomBiome(&fixedPicker{kind: BiomeCastle}, 3, 2); got != BiomeForest {
		t.Fatalf("fallback mismatch: got=%s want=%s", got, BiomeForest)
	}
	if got := g.RandomBiome(&fixedPicker{kind: BiomeLake}, 3, 2); got != BiomeLake {
		t.Fatalf("pick mismatch: got=%s want=%s", got, BiomeLake)
	}
}

func TestUniformPicker_SeedIsReproducible(t *testing.T) {
	g := CreateInitialGrid(5, 5, DefaultTuning())
	a, b := NewUniformPicker(42), NewUniformPicker(42)
	for i := 0; i < 50; i++ {
		ka, kb := g.RandomBiome(a, i, 0), g.RandomBiome(b, i, 0)
		if ka != kb {
			t.Fatalf("draw %d diverged: %s vs %s", i, ka, kb)
		}
		if !IsSelectable(ka) || ka == BiomeCastle {
			t.Fatalf("draw %d produced non-selectable biome %s", i, ka)
		}
	}
}
