package realm

import "math"

// Engine holds the balance tables and the biome source. It keeps no
// per-session data, so one engine can drive any number of states.
type Engine struct {
	Tuning Tuning
	Picker BiomePicker
}

func NewEngine(t Tuning, picker BiomePicker) Engine {
	if picker == nil {
		picker = NewUniformPicker(1)
	}
	return Engine{Tuning: t, Picker: picker}
}

func (e Engine) NewGame() *State {
	t := e.Tuning
	s := &State{
		Grid:       CreateInitialGrid(t.GridWidth, t.GridHeight, t),
		Resources:  Resources{Gold: t.StartingGold},
		Stats:      CharacterStats{GrantedLevel: 1},
		Farm:       FarmLevels{},
		PlayerName: DefaultPlayerName,
	}
	e.Recompute(s)
	return s
}

// Recompute rebuilds derived stats, level and rates from authoritative fields.
func (e Engine) Recompute(s *State) {
	s.Stats.recompute(e.Tuning)
	s.Level = e.Tuning.LevelFromXP(s.Resources.Experience)
	s.Rates = e.Tuning.ComputeRates(s.Grid, s.Stats, s.Farm)
}

type TickResult struct {
	ElapsedMillis float64 `json:"elapsed_ms"`
	LevelsGained  int     `json:"levels_gained"`
}

func (e Engine) clampDelta(dtMillis float64) float64 {
	if math.IsNaN(dtMillis) || math.IsInf(dtMillis, 0) || dtMillis < 0 {
		return 0
	}
	if limit := e.Tuning.MaxTickMillis; limit > 0 && dtMillis > limit {
		return limit
	}
	return dtMillis
}

// Tick advances resources by dtMillis of production. Pathological deltas are
// clamped to [0, MaxTickMillis].
func (e Engine) Tick(s *State, dtMillis float64) TickResult {
	dt := e.clampDelta(dtMillis)
	secs := dt / 1000
	xpScale := 1 + s.Stats.Derived.XPGainMultiplier/100
	for _, kind := range resourceKinds {
		delta := s.Rates.Get(kind).Total * secs
		if kind == ResourceExperience {
			delta *= xpScale
			if delta < 0 {
				delta = 0
			}
		}
		s.Resources.Add(kind, delta)
	}
	s.Resources.clampNonNegative()

	s.Level = e.Tuning.LevelFromXP(s.Resources.Experience)
	gained := s.grantLevelUps(e.Tuning)
	if gained > 0 {
		s.Stats.recompute(e.Tuning)
		s.Rates = e.Tuning.ComputeRates(s.Grid, s.Stats, s.Farm)
	}
	return TickResult{ElapsedMillis: dt, LevelsGained: gained}
}

// Advance settles a long absence in MaxTickMillis steps, up to OfflineCapMillis.
func (e Engine) Advance(s *State, elapsedMillis float64) TickResult {
	if math.IsNaN(elapsedMillis) || math.IsInf(elapsedMillis, 0) || elapsedMillis <= 0 {
		return TickResult{}
	}
	remaining := elapsedMillis
	if limit := e.Tuning.OfflineCapMillis; limit > 0 && remaining > limit {
		remaining = limit
	}
	step := e.Tuning.MaxTickMillis
	if step <= 0 {
		step = remaining
	}
	var total TickResult
	for remaining > 0 {
		chunk := math.Min(step, remaining)
		r := e.Tick(s, chunk)
		total.ElapsedMillis += r.ElapsedMillis
		total.LevelsGained += r.LevelsGained
		remaining -= chunk
	}
	return total
}

func (e Engine) View(s *State) View {
	v := View{
		Grid:              s.Grid.Clone(),
		Resources:         s.Resources,
		Rates:             s.Rates,
		Level:             s.Level,
		XPToNextLevel:     e.Tuning.XPToNextLevel(s.Resources.Experience),
		Stats:             s.Stats,
		Farm:              s.Farm.Clone(),
		PlayerName:        s.PlayerName,
		OwnedParcels:      s.Grid.OwnedCount(),
		NextParcelCost:    e.NextParcelCost(s),
		ManualBiomeChoice: e.ManualBiomeChoice(s),
	}
	if castle, ok := s.Grid.Castle(); ok {
		v.CastleLevel = castle.Level
		if castle.UpgradeCost != nil {
			cost := *castle.UpgradeCost
			v.CastleUpgradeCost = &cost
		}
	}
	return v
}
