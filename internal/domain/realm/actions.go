package realm

import (
	"math"
	"strings"
	"unicode/utf8"
)

type AcquireResult struct {
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Biome  BiomeKind `json:"biome"`
	Cost   int       `json:"cost"`
	XP     float64   `json:"xp"`
	Manual bool      `json:"manual"`
}

// NextParcelCost is the discounted gold price of the next acquisition.
func (e Engine) NextParcelCost(s *State) int {
	return ApplyDiscount(e.Tuning.ParcelCost(s.Grid.OwnedCount()), s.Stats.Derived.TileCostDiscount)
}

// ManualBiomeChoice reports whether the next acquisition lets the caller pick
// the biome instead of drawing one.
func (e Engine) ManualBiomeChoice(s *State) bool {
	return e.manualChoiceAt(s.Grid.OwnedCount())
}

func (e Engine) manualChoiceAt(ownedBefore int) bool {
	interval := e.Tuning.ManualBiomeInterval
	return interval > 0 && ownedBefore%interval == 0
}

// AcquireParcel buys (x, y). chosen may be empty for a random biome; a
// non-empty choice is only honoured on milestone acquisitions.
func (e Engine) AcquireParcel(s *State, x, y int, chosen BiomeKind) (AcquireResult, error) {
	ownedBefore := s.Grid.OwnedCount()
	p, ok := s.Grid.At(x, y)
	if !ok {
		return AcquireResult{}, ErrOutOfBounds
	}
	if p.Owned {
		return AcquireResult{}, ErrAlreadyOwned
	}
	if !s.Grid.IsAdjacentToOwned(x, y) {
		return AcquireResult{}, ErrNotAdjacent
	}
	manual := chosen != ""
	if manual {
		if !e.manualChoiceAt(ownedBefore) {
			return AcquireResult{}, ErrManualBiomeNotAllowed
		}
		if !IsSelectable(chosen) {
			return AcquireResult{}, ErrUnknownBiome
		}
		if biomeDefs[chosen].Unique && s.Grid.CountOwned(chosen) > 0 {
			return AcquireResult{}, ErrUniqueBiomeTaken
		}
	}
	cost := e.NextParcelCost(s)
	if s.Resources.Gold < float64(cost) {
		return AcquireResult{}, ErrInsufficientFunds
	}

	biome := chosen
	if !manual {
		biome = s.Grid.RandomBiome(e.Picker, x, y)
	}
	if err := s.Grid.Acquire(x, y, biome); err != nil {
		return AcquireResult{}, err
	}
	if biome == BiomeCastle {
		s.Grid.parcel(x, y).UpgradeCost = e.Tuning.CastleCostTable(1)
	}
	s.Resources.Gold -= float64(cost)
	xp := e.Tuning.XPGainOnAcquire(ownedBefore, s.Stats.Derived.XPGainMultiplier)
	s.Resources.Experience += xp
	s.Stats.EarnedReputation += e.Tuning.ReputationPerParcel
	e.Recompute(s)

	return AcquireResult{X: x, Y: y, Biome: biome, Cost: cost, XP: xp, Manual: manual}, nil
}

type CastleUpgradeResult struct {
	Level int       `json:"level"`
	Cost  Resources `json:"cost"`
}

func (e Engine) UpgradeCastle(s *State) (CastleUpgradeResult, error) {
	castle, ok := s.Grid.Castle()
	if !ok {
		return CastleUpgradeResult{}, ErrInvalidPersistedState
	}
	if castle.Level >= e.Tuning.CastleMaxLevel || castle.UpgradeCost == nil {
		return CastleUpgradeResult{}, ErrMaxLevelReached
	}
	cost := *castle.UpgradeCost
	if !s.Resources.Covers(cost) {
		return CastleUpgradeResult{}, ErrInsufficientFunds
	}
	s.Resources.Subtract(cost)
	p := s.Grid.parcel(castle.X, castle.Y)
	p.Level++
	p.UpgradeCost = e.Tuning.CastleCostTable(p.Level)
	e.Recompute(s)
	return CastleUpgradeResult{Level: p.Level, Cost: cost}, nil
}

func (e Engine) AllocateStatPoint(s *State, key StatKey) error {
	if err := s.Stats.allocate(key); err != nil {
		return err
	}
	e.Recompute(s)
	return nil
}

func (e Engine) SellResources(s *State, kind ResourceKind, amount float64) (float64, error) {
	price, ok := sellPrices[kind]
	if !ok {
		return 0, ErrNotSellable
	}
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}
	if amount > s.Resources.Get(kind) {
		return 0, ErrInsufficientFunds
	}
	gained := amount * price
	s.Resources.Add(kind, -amount)
	s.Resources.Gold += gained
	s.Resources.clampNonNegative()
	return gained, nil
}

// BuyResources converts gold into kind at the marked-up price and returns the
// gold spent.
func (e Engine) BuyResources(s *State, kind ResourceKind, amount float64) (float64, error) {
	price, ok := sellPrices[kind]
	if !ok {
		return 0, ErrNotSellable
	}
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}
	spent := amount * price * e.Tuning.BuyPriceMultiplier
	if spent > s.Resources.Gold {
		return 0, ErrInsufficientFunds
	}
	s.Resources.Gold -= spent
	s.Resources.Add(kind, amount)
	s.Resources.clampNonNegative()
	return spent, nil
}

type AnimalPurchase struct {
	Animal AnimalID `json:"animal"`
	Level  int      `json:"level"`
	Cost   float64  `json:"cost"`
}

func (e Engine) PurchaseOrUpgradeAnimal(s *State, id AnimalID) (AnimalPurchase, error) {
	def, ok := AnimalDefinitionOf(id)
	if !ok {
		return AnimalPurchase{}, ErrUnknownAnimal
	}
	level := s.Farm[id]
	cost := def.Cost(level)
	if s.Resources.Food < cost {
		return AnimalPurchase{}, ErrInsufficientFunds
	}
	s.Resources.Food -= cost
	if s.Farm == nil {
		s.Farm = FarmLevels{}
	}
	s.Farm[id] = level + 1
	e.Recompute(s)
	return AnimalPurchase{Animal: id, Level: level + 1, Cost: cost}, nil
}

// ConvertGrounds replaces an owned grounds parcel with a building.
func (e Engine) ConvertGrounds(s *State, x, y int, building BiomeKind) (Resources, error) {
	p, ok := s.Grid.At(x, y)
	if !ok {
		return Resources{}, ErrOutOfBounds
	}
	if !p.Owned || !biomeDefs[p.Biome].SupportsBuildings {
		return Resources{}, ErrNotGrounds
	}
	def, ok := biomeDefs[building]
	if !ok || !def.Building {
		return Resources{}, ErrUnknownBuilding
	}
	if !s.Resources.Covers(def.BuildCost) {
		return Resources{}, ErrInsufficientFunds
	}
	s.Resources.Subtract(def.BuildCost)
	s.Grid.parcel(x, y).Biome = building
	e.Recompute(s)
	return def.BuildCost, nil
}

// SetPlayerName trims name and keeps at most MaxPlayerNameLength runes.
func (e Engine) SetPlayerName(s *State, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if limit := e.Tuning.MaxPlayerNameLength; limit > 0 && utf8.RuneCountInString(name) > limit {
		name = strings.TrimSpace(string([]rune(name)[:limit]))
	}
	s.PlayerName = name
	return name, nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
