package action

import "idlarz/internal/domain/realm"

// Intent is one player command. Only the fields its Type reads are used.
type Intent struct {
	Type     string             `json:"type"`
	X        int                `json:"x,omitempty"`
	Y        int                `json:"y,omitempty"`
	Biome    realm.BiomeKind    `json:"biome,omitempty"`
	Stat     realm.StatKey      `json:"stat,omitempty"`
	Resource realm.ResourceKind `json:"resource,omitempty"`
	Amount   float64            `json:"amount,omitempty"`
	Animal   realm.AnimalID     `json:"animal,omitempty"`
	Building realm.BiomeKind    `json:"building,omitempty"`
	Name     string             `json:"name,omitempty"`
}

type Request struct {
	SessionID      string
	IdempotencyKey string
	Intent         Intent
}

type Response struct {
	SettledMillis float64             `json:"settled_ms"`
	LevelsGained  int                 `json:"levels_gained"`
	Version       int64               `json:"version"`
	View          realm.View          `json:"view"`
	Events        []realm.DomainEvent `json:"events"`
	Outcome       map[string]any      `json:"outcome,omitempty"`
	ResultCode    realm.ResultCode    `json:"result_code"`
	Replayed      bool                `json:"replayed,omitempty"`
}
