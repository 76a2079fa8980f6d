package realm

import "math"

type LevelState struct {
	Level    int     `json:"level"`
	Progress float64 `json:"progress"`
}

// LevelFromXP walks cumulative thresholds until the next one exceeds xp.
func (t Tuning) LevelFromXP(xp float64) LevelState {
	if math.IsNaN(xp) || xp < 0 {
		xp = 0
	}
	maxLevel := t.MaxPlayerLevel
	if maxLevel < 1 {
		maxLevel = 1
	}
	level := 1
	spent := 0.0
	for level < maxLevel {
		need := t.XPThreshold(level)
		if need <= 0 {
			need = 1
		}
		if xp < spent+need {
			return LevelState{Level: level, Progress: (xp - spent) / need}
		}
		spent += need
		level++
	}
	return LevelState{Level: maxLevel}
}

// XPToNextLevel is how much experience is still missing for the next level.
func (t Tuning) XPToNextLevel(xp float64) float64 {
	ls := t.LevelFromXP(xp)
	if ls.Level >= t.MaxPlayerLevel {
		return 0
	}
	need := t.XPThreshold(ls.Level)
	return need * (1 - ls.Progress)
}

// grantLevelUps hands out stat points for levels reached since the last grant
// and reports how many levels were gained.
func (s *State) grantLevelUps(t Tuning) int {
	if s.Level.Level <= s.Stats.GrantedLevel {
		return 0
	}
	gained := s.Level.Level - s.Stats.GrantedLevel
	s.Stats.AvailablePoints += t.StatPointsPerLevel * gained
	s.Stats.GrantedLevel = s.Level.Level
	return gained
}
