package realm

import "math"

type StatKey string

const (
	StatStrength     StatKey = "strength"
	StatDexterity    StatKey = "dexterity"
	StatIntelligence StatKey = "intelligence"
	StatVitality     StatKey = "vitality"
	StatCharisma     StatKey = "charisma"
)

var statKeys = []StatKey{StatStrength, StatDexterity, StatIntelligence, StatVitality, StatCharisma}

func StatKeys() []StatKey {
	out := make([]StatKey, len(statKeys))
	copy(out, statKeys)
	return out
}

type BaseStats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
	Vitality     int `json:"vitality"`
	Charisma     int `json:"charisma"`
}

func (b *BaseStats) ptr(key StatKey) *int {
	switch key {
	case StatStrength:
		return &b.Strength
	case StatDexterity:
		return &b.Dexterity
	case StatIntelligence:
		return &b.Intelligence
	case StatVitality:
		return &b.Vitality
	case StatCharisma:
		return &b.Charisma
	default:
		return nil
	}
}

func (b BaseStats) Get(key StatKey) int {
	if p := b.ptr(key); p != nil {
		return *p
	}
	return 0
}

type DerivedStats struct {
	HP                int     `json:"hp"`
	MP                int     `json:"mp"`
	PhysicalAtk       int     `json:"physical_atk"`
	MagicAtk          int     `json:"magic_atk"`
	Def               int     `json:"def"`
	MagicDef          int     `json:"magic_def"`
	Luck              float64 `json:"luck"`
	CritChance        float64 `json:"crit_chance"`
	CritDmgMultiplier float64 `json:"crit_dmg_multiplier"`
	AtkSpeedIncrease  float64 `json:"atk_speed_increase"`
	XPGainMultiplier  float64 `json:"xp_gain_multiplier"`
	TileCostDiscount  float64 `json:"tile_cost_discount"`
	Reputation        int     `json:"reputation"`
}

type CharacterStats struct {
	Base             BaseStats `json:"base"`
	AvailablePoints  int       `json:"available_points"`
	EarnedReputation int       `json:"earned_reputation"`
	// GrantedLevel is the highest level whose stat points were already handed out.
	GrantedLevel int          `json:"granted_level"`
	Derived      DerivedStats `json:"derived"`
}

// DeriveStats is a pure function of the base stats and earned reputation.
func DeriveStats(base BaseStats, earnedReputation int, maxDiscount float64) DerivedStats {
	str, dex, intl, vit, cha := base.Strength, base.Dexterity, base.Intelligence, base.Vitality, base.Charisma
	return DerivedStats{
		HP:                100 + 10*vit + 2*str,
		MP:                50 + 8*intl,
		PhysicalAtk:       5 + 2*str + dex/2,
		MagicAtk:          5 + 2*intl,
		Def:               2 + vit + str/2,
		MagicDef:          2 + intl/2 + vit/2,
		Luck:              0.5*float64(cha) + 0.25*float64(dex),
		CritChance:        math.Min(5+0.5*float64(dex), 75),
		CritDmgMultiplier: 1.5 + 0.02*float64(str),
		AtkSpeedIncrease:  float64(dex),
		XPGainMultiplier:  2 * float64(intl),
		TileCostDiscount:  math.Min(0.5*float64(cha), maxDiscount),
		Reputation:        2*cha + earnedReputation,
	}
}

func (c *CharacterStats) recompute(t Tuning) {
	c.Derived = DeriveStats(c.Base, c.EarnedReputation, t.MaxTileCostDiscount)
}

// allocate spends one point on key. c is unchanged on error.
func (c *CharacterStats) allocate(key StatKey) error {
	p := c.Base.ptr(key)
	if p == nil {
		return ErrUnknownStat
	}
	if c.AvailablePoints <= 0 {
		return ErrNoPointsAvailable
	}
	*p++
	c.AvailablePoints--
	return nil
}

// statModifiers is the per-point fractional bonus each base stat gives to
// resource production.
var statModifiers = map[StatKey]Resources{
	StatStrength:     {Stone: 0.01, Coal: 0.01},
	StatDexterity:    {Wood: 0.01},
	StatIntelligence: {Gold: 0.005},
	StatVitality:     {Food: 0.01, Meat: 0.01},
	StatCharisma:     {Gold: 0.005},
}

func resourceModifiers(base BaseStats) Resources {
	var out Resources
	for _, key := range statKeys {
		points := float64(base.Get(key))
		if points == 0 {
			continue
		}
		mod := statModifiers[key]
		for _, kind := range resourceKinds {
			out.Add(kind, mod.Get(kind)*points)
		}
	}
	return out
}
