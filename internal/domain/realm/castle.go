package realm

import "math"

// CastleUpgradeCost is the price of raising the castle from level to level+1.
func CastleUpgradeCost(level int) Resources {
	if level < 1 {
		level = 1
	}
	step := float64(level - 1)
	cost := Resources{
		Gold:  math.Floor(500 * math.Pow(2.5, step)),
		Wood:  math.Floor(300 * math.Pow(2.2, step)),
		Stone: math.Floor(300 * math.Pow(2.2, step)),
	}
	if level >= 3 {
		cost.Coal = math.Floor(100 * math.Pow(2, float64(level-3)))
	}
	return cost
}

// CastleCostTable returns the upgrade cost attached to a castle at level, or
// nil once the cap is reached.
func (t Tuning) CastleCostTable(level int) *Resources {
	if level >= t.CastleMaxLevel {
		return nil
	}
	cost := CastleUpgradeCost(level)
	return &cost
}

// CastleMultiplier is the compounding factor applied to the castle's own output.
func (t Tuning) CastleMultiplier(level int) float64 {
	if level <= 1 {
		return 1
	}
	return math.Pow(t.CastleLevelMultiplier, float64(level-1))
}
