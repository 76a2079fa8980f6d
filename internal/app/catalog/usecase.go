// Package catalog exposes the static balance tables clients need to render
// prices and production without reimplementing the formulas.
package catalog

import (
	"idlarz/internal/app/action"
	"idlarz/internal/domain/realm"
)

const defaultParcelRows = 50

type CastleCostRow struct {
	Level int             `json:"level"`
	Cost  realm.Resources `json:"cost"`
}

type ParcelCostRow struct {
	Owned int `json:"owned"`
	Cost  int `json:"cost"`
}

type Response struct {
	Tuning      realm.Tuning             `json:"tuning"`
	Biomes      []realm.BiomeDefinition  `json:"biomes"`
	Animals     []realm.AnimalDefinition `json:"animals"`
	Market      []realm.MarketPrice      `json:"market"`
	CastleCosts []CastleCostRow          `json:"castle_costs"`
	ParcelCosts []ParcelCostRow          `json:"parcel_costs"`
	Intents     []string                 `json:"intents"`
}

type Request struct {
	// ParcelRows caps the parcel cost table; zero means the default.
	ParcelRows int
}

type UseCase struct {
	Tuning realm.Tuning
}

func (u UseCase) Execute(req Request) Response {
	rows := req.ParcelRows
	if rows <= 0 {
		rows = defaultParcelRows
	}
	if limit := u.Tuning.GridWidth * u.Tuning.GridHeight; limit > 0 && rows > limit {
		rows = limit
	}

	castle := make([]CastleCostRow, 0, u.Tuning.CastleMaxLevel)
	for level := 1; level < u.Tuning.CastleMaxLevel; level++ {
		if cost := u.Tuning.CastleCostTable(level); cost != nil {
			castle = append(castle, CastleCostRow{Level: level, Cost: *cost})
		}
	}
	parcels := make([]ParcelCostRow, 0, rows)
	for owned := 1; owned <= rows; owned++ {
		parcels = append(parcels, ParcelCostRow{Owned: owned, Cost: u.Tuning.ParcelCost(owned)})
	}

	return Response{
		Tuning:      u.Tuning,
		Biomes:      realm.Biomes(),
		Animals:     realm.Animals(),
		Market:      u.Tuning.MarketPrices(),
		CastleCosts: castle,
		ParcelCosts: parcels,
		Intents:     action.SupportedIntents(),
	}
}
