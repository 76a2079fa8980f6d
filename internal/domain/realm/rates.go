package realm

type ResourceRate struct {
	Base     float64 `json:"base"`
	Modifier float64 `json:"modifier"`
	Total    float64 `json:"total"`
}

type ResourceRates struct {
	Gold       ResourceRate `json:"gold"`
	Wood       ResourceRate `json:"wood"`
	Stone      ResourceRate `json:"stone"`
	Coal       ResourceRate `json:"coal"`
	Food       ResourceRate `json:"food"`
	Meat       ResourceRate `json:"meat"`
	Experience ResourceRate `json:"experience"`
}

func (r *ResourceRates) at(kind ResourceKind) *ResourceRate {
	switch kind {
	case ResourceGold:
		return &r.Gold
	case ResourceWood:
		return &r.Wood
	case ResourceStone:
		return &r.Stone
	case ResourceCoal:
		return &r.Coal
	case ResourceFood:
		return &r.Food
	case ResourceMeat:
		return &r.Meat
	case ResourceExperience:
		return &r.Experience
	default:
		return nil
	}
}

func (r ResourceRates) Get(kind ResourceKind) ResourceRate {
	if p := r.at(kind); p != nil {
		return *p
	}
	return ResourceRate{}
}

// ParcelOutput is what one owned parcel adds to the base rates after the
// castle multiplier or the adjacency bonus.
func (t Tuning) ParcelOutput(g Grid, p Parcel) Resources {
	def, ok := BiomeDefinitionOf(p.Biome)
	if !p.Owned || !ok {
		return Resources{}
	}
	out := def.Generation
	if p.Biome == BiomeCastle {
		mult := t.CastleMultiplier(p.Level)
		for _, kind := range resourceKinds {
			out.Set(kind, out.Get(kind)*mult)
		}
		return out
	}
	n := g.SameBiomeNeighbours(p.X, p.Y)
	if n == 0 {
		return out
	}
	bonus := 1 + t.AdjacencyBonus*float64(n)
	for _, kind := range resourceKinds {
		if v := out.Get(kind); v > 0 {
			out.Set(kind, v*bonus)
		}
	}
	return out
}

// ComputeRates derives production rates from the grid, stats and farm. It
// reads nothing else and mutates none of its inputs.
func (t Tuning) ComputeRates(g Grid, stats CharacterStats, farm FarmLevels) ResourceRates {
	var base Resources
	for _, p := range g.Parcels {
		if !p.Owned {
			continue
		}
		out := t.ParcelOutput(g, p)
		for _, kind := range resourceKinds {
			base.Add(kind, out.Get(kind))
		}
	}
	base.Meat += t.MeatRate(farm, g.CountOwned(BiomePlains))

	mods := resourceModifiers(stats.Base)
	var rates ResourceRates
	for _, kind := range resourceKinds {
		r := rates.at(kind)
		r.Base = base.Get(kind)
		r.Modifier = mods.Get(kind)
		r.Total = r.Base
		if r.Base > 0 {
			r.Total = r.Base * (1 + r.Modifier)
		}
	}
	return rates
}
