package realm

import (
	"math/rand"
	"sync"
)

// BiomePicker chooses the biome a randomly assigned parcel receives.
// candidates is never empty.
type BiomePicker interface {
	PickBiome(x, y int, candidates []BiomeKind) BiomeKind
}

// UniformPicker draws uniformly from the candidates with a seeded source.
// It is safe for concurrent use so one engine can serve many sessions.
type UniformPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewUniformPicker(seed int64) *UniformPicker {
	return &UniformPicker{rng: rand.New(rand.NewSource(seed))}
}

func (p *UniformPicker) PickBiome(_, _ int, candidates []BiomeKind) BiomeKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return candidates[p.rng.Intn(len(candidates))]
}

// RandomBiome returns a selectable biome for (x, y) using picker.
func (g Grid) RandomBiome(picker BiomePicker, x, y int) BiomeKind {
	candidates := g.SelectableBiomes()
	if len(candidates) == 0 {
		return BiomeGrounds
	}
	kind := picker.PickBiome(x, y, candidates)
	for _, c := range candidates {
		if c == kind {
			return kind
		}
	}
	return candidates[0]
}
