package realm

type Parcel struct {
	X           int        `json:"x"`
	Y           int        `json:"y"`
	Owned       bool       `json:"owned"`
	Biome       BiomeKind  `json:"biome"`
	Level       int        `json:"level,omitempty"`
	UpgradeCost *Resources `json:"upgrade_cost,omitempty"`
}

// Grid stores parcels row-major: index = y*Width + x.
type Grid struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Parcels []Parcel `json:"parcels"`
}

var neighbourOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// CreateInitialGrid builds an unowned grid with the castle seeded at the center.
func CreateInitialGrid(width, height int, t Tuning) Grid {
	if width < 1 {
		width = DefaultGridWidth
	}
	if height < 1 {
		height = DefaultGridHeight
	}
	g := Grid{
		Width:   width,
		Height:  height,
		Parcels: make([]Parcel, 0, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Parcels = append(g.Parcels, Parcel{X: x, Y: y, Biome: BiomeEmpty})
		}
	}
	center := g.parcel(width/2, height/2)
	center.Owned = true
	center.Biome = BiomeCastle
	center.Level = 1
	center.UpgradeCost = t.CastleCostTable(1)
	return g
}

func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

func (g Grid) At(x, y int) (Parcel, bool) {
	if !g.InBounds(x, y) {
		return Parcel{}, false
	}
	return g.Parcels[y*g.Width+x], true
}

func (g *Grid) parcel(x, y int) *Parcel {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.Parcels[y*g.Width+x]
}

func (g Grid) IsAdjacentToOwned(x, y int) bool {
	for _, d := range neighbourOffsets {
		if p, ok := g.At(x+d[0], y+d[1]); ok && p.Owned {
			return true
		}
	}
	return false
}

// SameBiomeNeighbours counts owned 4-neighbours sharing the parcel's biome.
func (g Grid) SameBiomeNeighbours(x, y int) int {
	p, ok := g.At(x, y)
	if !ok || !p.Owned {
		return 0
	}
	n := 0
	for _, d := range neighbourOffsets {
		if q, ok := g.At(x+d[0], y+d[1]); ok && q.Owned && q.Biome == p.Biome {
			n++
		}
	}
	return n
}

func (g Grid) OwnedCount() int {
	n := 0
	for _, p := range g.Parcels {
		if p.Owned {
			n++
		}
	}
	return n
}

func (g Grid) CountOwned(kind BiomeKind) int {
	n := 0
	for _, p := range g.Parcels {
		if p.Owned && p.Biome == kind {
			n++
		}
	}
	return n
}

func (g Grid) Castle() (Parcel, bool) {
	for _, p := range g.Parcels {
		if p.Owned && p.Biome == BiomeCastle {
			return p, true
		}
	}
	return Parcel{}, false
}

// Acquire marks the parcel owned with the given biome. The grid is left
// untouched when any precondition fails.
func (g *Grid) Acquire(x, y int, biome BiomeKind) error {
	target := g.parcel(x, y)
	if target == nil {
		return ErrOutOfBounds
	}
	if target.Owned {
		return ErrAlreadyOwned
	}
	if !g.IsAdjacentToOwned(x, y) {
		return ErrNotAdjacent
	}
	def, ok := BiomeDefinitionOf(biome)
	if !ok {
		return ErrUnknownBiome
	}
	if def.Unique && g.CountOwned(biome) > 0 {
		return ErrUniqueBiomeTaken
	}
	target.Owned = true
	target.Biome = biome
	if biome == BiomeCastle {
		target.Level = 1
	}
	return nil
}

// SelectableBiomes lists the kinds a new parcel may receive on this grid.
func (g Grid) SelectableBiomes() []BiomeKind {
	out := make([]BiomeKind, 0, len(biomeOrder))
	for _, kind := range biomeOrder {
		if !IsSelectable(kind) {
			continue
		}
		if biomeDefs[kind].Unique && g.CountOwned(kind) > 0 {
			continue
		}
		out = append(out, kind)
	}
	return out
}

func (g Grid) Clone() Grid {
	out := Grid{Width: g.Width, Height: g.Height, Parcels: make([]Parcel, len(g.Parcels))}
	copy(out.Parcels, g.Parcels)
	for i := range out.Parcels {
		if c := out.Parcels[i].UpgradeCost; c != nil {
			cost := *c
			out.Parcels[i].UpgradeCost = &cost
		}
	}
	return out
}

// connectedToCastle reports whether every owned parcel is reachable from the
// castle through owned 4-neighbours.
func (g Grid) connectedToCastle() bool {
	castle, ok := g.Castle()
	if !ok {
		return false
	}
	seen := make([]bool, len(g.Parcels))
	queue := []Parcel{castle}
	seen[castle.Y*g.Width+castle.X] = true
	reached := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		reached++
		for _, d := range neighbourOffsets {
			q, ok := g.At(p.X+d[0], p.Y+d[1])
			if !ok || !q.Owned {
				continue
			}
			idx := q.Y*g.Width + q.X
			if seen[idx] {
				continue
			}
			seen[idx] = true
			queue = append(queue, q)
		}
	}
	return reached == g.OwnedCount()
}
