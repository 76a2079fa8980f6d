package action

import (
	"strings"

	"idlarz/internal/domain/realm"
)

const (
	IntentAcquireParcel  = "acquire_parcel"
	IntentUpgradeCastle  = "upgrade_castle"
	IntentAllocateStat   = "allocate_stat"
	IntentSell           = "sell"
	IntentBuy            = "buy"
	IntentPurchaseAnimal = "purchase_animal"
	IntentConvertGrounds = "convert_grounds"
	IntentSetName        = "set_name"
)

// applied is what a handler reports after mutating the state.
type applied struct {
	EventType string
	Outcome   map[string]any
}

type intentHandler struct {
	Validate func(Intent) bool
	Apply    func(e realm.Engine, s *realm.State, in Intent) (applied, error)
}

func intentRegistry() map[string]intentHandler {
	return map[string]intentHandler{
		IntentAcquireParcel:  {Validate: validateAcquire, Apply: applyAcquire},
		IntentUpgradeCastle:  {Validate: alwaysValid, Apply: applyUpgradeCastle},
		IntentAllocateStat:   {Validate: validateStat, Apply: applyAllocateStat},
		IntentSell:           {Validate: validateTrade, Apply: applySell},
		IntentBuy:            {Validate: validateTrade, Apply: applyBuy},
		IntentPurchaseAnimal: {Validate: validateAnimal, Apply: applyPurchaseAnimal},
		IntentConvertGrounds: {Validate: validateConvert, Apply: applyConvertGrounds},
		IntentSetName:        {Validate: validateName, Apply: applySetName},
	}
}

// SupportedIntents lists intent types in a stable order.
func SupportedIntents() []string {
	return []string{
		IntentAcquireParcel,
		IntentUpgradeCastle,
		IntentAllocateStat,
		IntentSell,
		IntentBuy,
		IntentPurchaseAnimal,
		IntentConvertGrounds,
		IntentSetName,
	}
}

func normalizeIntent(in Intent) Intent {
	out := in
	out.Type = strings.ToLower(strings.TrimSpace(out.Type))
	out.Biome = realm.BiomeKind(strings.ToLower(strings.TrimSpace(string(out.Biome))))
	out.Building = realm.BiomeKind(strings.ToLower(strings.TrimSpace(string(out.Building))))
	out.Stat = realm.StatKey(strings.ToLower(strings.TrimSpace(string(out.Stat))))
	out.Resource = realm.ResourceKind(strings.ToLower(strings.TrimSpace(string(out.Resource))))
	out.Animal = realm.AnimalID(strings.ToLower(strings.TrimSpace(string(out.Animal))))
	return out
}

func alwaysValid(Intent) bool { return true }

func validateAcquire(in Intent) bool {
	return in.X >= 0 && in.Y >= 0
}

func validateStat(in Intent) bool {
	return in.Stat != ""
}

func validateTrade(in Intent) bool {
	return realm.IsResourceKind(in.Resource) && in.Amount > 0
}

func validateAnimal(in Intent) bool {
	return in.Animal != ""
}

func validateConvert(in Intent) bool {
	return in.X >= 0 && in.Y >= 0 && in.Building != ""
}

func validateName(in Intent) bool {
	return strings.TrimSpace(in.Name) != ""
}

func applyAcquire(e realm.Engine, s *realm.State, in Intent) (applied, error) {
	res, err := e.AcquireParcel(s, in.X, in.Y, in.Biome)
	if err != nil {
		return applied{}, err
	}
	return applied{EventType: realm.EventParcelAcquired, Outcome: map[string]any{
		"x":      res.X,
		"y":      res.Y,
		"biome":  res.Biome,
		"cost":   res.Cost,
		"xp":     res.XP,
		"manual": res.Manual,
	}}, nil
}

func applyUpgradeCastle(e realm.Engine, s *realm.State, _ Intent) (applied, error) {
	res, err := e.UpgradeCastle(s)
	if err != nil {
		return applied{}, err
	}
	return applied{EventType: realm.EventCastleUpgraded, Outcome: map[string]any{
		"level": res.Level,
		"cost":  res.Cost,
	}}, nil
}

func applyAllocateStat(e realm.Engine, s *realm.State, in Intent) (applied, error) {
	if err := e.AllocateStatPoint(s, in.Stat); err != nil {
		return applied{}, err
	}
	return applied{EventType: realm.EventStatAllocated, Outcome: map[string]any{
		"stat":             in.Stat,
		"value":            s.Stats.Base.Get(in.Stat),
		"available_points": s.Stats.AvailablePoints,
	}}, nil
}

func applySell(e realm.Engine, s *realm.State, in Intent) (applied, error) {
	gained, err := e.SellResources(s, in.Resource, in.Amount)
	if err != nil {
		return applied{}, err
	}
	return applied{EventType: realm.EventResourcesSold, Outcome: map[string]any{
		"resource":    in.Resource,
		"amount":      in.Amount,
		"gold_gained": gained,
	}}, nil
}

func applyBuy(e realm.Engine, s *realm.State, in Intent) (applied, error) {
	spent, err := e.BuyResources(s, in.Resource, in.Amount)
	if err != nil {
		return applied{}, err
	}
	return applied{EventType: realm.EventResourcesBought, Outcome: map[string]any{
		"resource":   in.Resource,
		"amount":     in.Amount,
		"gold_spent": spent,
	}}, nil
}

func applyPurchaseAnimal(e realm.Engine, s *realm.State, in Intent) (applied, error) {
	res, err := e.PurchaseOrUpgradeAnimal(s, in.Animal)
	if err != nil {
		return applied{}, err
	}
	return applied{EventType: realm.EventAnimalPurchased, Outcome: map[string]any{
		"animal":     res.Animal,
		"level":      res.Level,
		"food_spent": res.Cost,
	}}, nil
}

func applyConvertGrounds(e realm.Engine, s *realm.State, in Intent) (applied, error) {
	cost, err := e.ConvertGrounds(s, in.X, in.Y, in.Building)
	if err != nil {
		return applied{}, err
	}
	return applied{EventType: realm.EventGroundsBuilt, Outcome: map[string]any{
		"x":        in.X,
		"y":        in.Y,
		"building": in.Building,
		"cost":     cost,
	}}, nil
}

func applySetName(e realm.Engine, s *realm.State, in Intent) (applied, error) {
	name, err := e.SetPlayerName(s, in.Name)
	if err != nil {
		return applied{}, err
	}
	return applied{EventType: realm.EventPlayerRenamed, Outcome: map[string]any{
		"player_name": name,
	}}, nil
}
