package realm

import "encoding/json"

const DefaultPlayerName = "Lord"

// State is one game session. It is owned by the caller and mutated only
// through Engine methods; Level and Rates are caches the engine rebuilds
// before every method returns.
type State struct {
	Grid       Grid           `json:"grid"`
	Resources  Resources      `json:"resources"`
	Stats      CharacterStats `json:"stats"`
	Farm       FarmLevels     `json:"farm"`
	PlayerName string         `json:"player_name"`

	// Inventory and Equipment are carried for the storage layer only.
	Inventory json.RawMessage `json:"inventory,omitempty"`
	Equipment json.RawMessage `json:"equipment,omitempty"`

	Level LevelState    `json:"level"`
	Rates ResourceRates `json:"rates"`
}

// View is a detached read-only copy of a state plus values presentation
// layers usually need next to it.
type View struct {
	Grid              Grid           `json:"grid"`
	Resources         Resources      `json:"resources"`
	Rates             ResourceRates  `json:"rates"`
	Level             LevelState     `json:"level"`
	XPToNextLevel     float64        `json:"xp_to_next_level"`
	Stats             CharacterStats `json:"stats"`
	Farm              FarmLevels     `json:"farm"`
	PlayerName        string         `json:"player_name"`
	OwnedParcels      int            `json:"owned_parcels"`
	NextParcelCost    int            `json:"next_parcel_cost"`
	ManualBiomeChoice bool           `json:"manual_biome_choice"`
	CastleLevel       int            `json:"castle_level"`
	CastleUpgradeCost *Resources     `json:"castle_upgrade_cost,omitempty"`
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
