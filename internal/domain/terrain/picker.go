// Package terrain assigns biomes from a seeded noise field so neighbouring
// parcels tend to share a landscape instead of being drawn independently.
package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"idlarz/internal/domain/realm"
)

const defaultFrequency = 0.18

// Sample is the normalized climate at one grid position; every field is in [0, 1).
type Sample struct {
	Elevation   float64 `json:"elevation"`
	Rainfall    float64 `json:"rainfall"`
	Temperature float64 `json:"temperature"`
}

// Picker implements realm.BiomePicker. It holds only read-only noise tables,
// so a single Picker may be shared between sessions.
type Picker struct {
	elev      opensimplex.Noise
	rain      opensimplex.Noise
	temp      opensimplex.Noise
	frequency float64
}

func NewPicker(seed int64) *Picker {
	return &Picker{
		elev:      opensimplex.NewNormalized(seed),
		rain:      opensimplex.NewNormalized(seed + 1),
		temp:      opensimplex.NewNormalized(seed + 2),
		frequency: defaultFrequency,
	}
}

func (p *Picker) Sample(x, y int) Sample {
	fx, fy := float64(x), float64(y)
	return Sample{
		Elevation:   octaveNoise(p.elev, fx, fy, 3, p.frequency, 0.5),
		Rainfall:    octaveNoise(p.rain, fx, fy, 2, p.frequency*0.8, 0.5),
		Temperature: octaveNoise(p.temp, fx, fy, 2, p.frequency*0.6, 0.5),
	}
}

// PickBiome returns the climate's biome when it is still a candidate.
// Otherwise elevation indexes into candidates, which keeps the result
// deterministic for a given seed and position.
func (p *Picker) PickBiome(x, y int, candidates []realm.BiomeKind) realm.BiomeKind {
	s := p.Sample(x, y)
	want := Classify(s)
	for _, c := range candidates {
		if c == want {
			return want
		}
	}
	idx := int(s.Elevation * float64(len(candidates)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	return candidates[idx]
}

// Classify maps a climate sample to a natural biome. It never returns the
// castle or a building.
func Classify(s Sample) realm.BiomeKind {
	switch {
	case s.Elevation > 0.68:
		if s.Temperature < 0.4 {
			return realm.BiomeTundra
		}
		return realm.BiomeHills
	case s.Elevation < 0.32:
		if s.Rainfall > 0.5 {
			return realm.BiomeLake
		}
		return realm.BiomeSwamp
	case s.Temperature < 0.3:
		return realm.BiomeTundra
	case s.Rainfall > 0.58:
		return realm.BiomeForest
	case s.Rainfall < 0.35:
		return realm.BiomeGrounds
	default:
		return realm.BiomePlains
	}
}

// octaveNoise layers several frequencies for smoother regions.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
