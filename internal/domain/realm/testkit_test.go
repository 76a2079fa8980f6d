package realm

import "math"

type fixedPicker struct {
	kind  BiomeKind
	calls int
}

func (p *fixedPicker) PickBiome(_, _ int, _ []BiomeKind) BiomeKind {
	p.calls++
	return p.kind
}

func newTestEngine(kind BiomeKind) (Engine, *fixedPicker) {
	picker := &fixedPicker{kind: kind}
	return NewEngine(DefaultTuning(), picker), picker
}

func approxEqual(got, want float64) bool {
	return math.Abs(got-want) <= 1e-9*math.Max(1, math.Abs(want))
}
