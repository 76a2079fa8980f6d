package realm

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const SnapshotVersion = 1

// Snapshot is the persisted form of a State. Rates and level are left out;
// they are rebuilt on restore.
type Snapshot struct {
	Version    int             `json:"version"`
	Grid       Grid            `json:"grid"`
	Resources  Resources       `json:"resources"`
	Stats      CharacterStats  `json:"stats"`
	FarmLevels FarmLevels      `json:"farm_levels"`
	PlayerName string          `json:"player_name"`
	Inventory  json.RawMessage `json:"inventory,omitempty"`
	Equipment  json.RawMessage `json:"equipment,omitempty"`
}

func (e Engine) Snapshot(s *State) Snapshot {
	return Snapshot{
		Version:    SnapshotVersion,
		Grid:       s.Grid.Clone(),
		Resources:  s.Resources,
		Stats:      s.Stats,
		FarmLevels: s.Farm.Clone(),
		PlayerName: s.PlayerName,
		Inventory:  cloneRaw(s.Inventory),
		Equipment:  cloneRaw(s.Equipment),
	}
}

func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func DecodeSnapshot(b []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidPersistedState, err)
	}
	return snap, nil
}

// Validate checks shape and invariants; every failure wraps
// ErrInvalidPersistedState.
func (e Engine) Validate(snap Snapshot) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidPersistedState, fmt.Sprintf(format, args...))
	}
	if snap.Version != SnapshotVersion {
		return invalid("unsupported version %d", snap.Version)
	}
	g := snap.Grid
	if g.Width < 1 || g.Height < 1 || len(g.Parcels) != g.Width*g.Height {
		return invalid("grid %dx%d has %d parcels", g.Width, g.Height, len(g.Parcels))
	}
	castles := 0
	for i, p := range g.Parcels {
		if p.X != i%g.Width || p.Y != i/g.Width {
			return invalid("parcel %d has position (%d,%d)", i, p.X, p.Y)
		}
		if !p.Owned {
			if p.Biome != BiomeEmpty || p.Level != 0 || p.UpgradeCost != nil {
				return invalid("unowned parcel (%d,%d) is not empty", p.X, p.Y)
			}
			continue
		}
		if _, ok := biomeDefs[p.Biome]; !ok {
			return invalid("owned parcel (%d,%d) has biome %q", p.X, p.Y, p.Biome)
		}
		if p.Biome != BiomeCastle {
			if p.Level != 0 || p.UpgradeCost != nil {
				return invalid("parcel (%d,%d) carries castle fields", p.X, p.Y)
			}
			continue
		}
		castles++
		if p.Level < 1 || p.Level > e.Tuning.CastleMaxLevel {
			return invalid("castle level %d", p.Level)
		}
		if p.UpgradeCost != nil && !p.UpgradeCost.Valid() {
			return invalid("castle upgrade cost")
		}
	}
	if castles != 1 {
		return invalid("%d castles", castles)
	}
	if !g.connectedToCastle() {
		return invalid("owned parcels are not connected to the castle")
	}
	if !snap.Resources.Valid() {
		return invalid("resources out of range")
	}
	st := snap.Stats
	for _, key := range statKeys {
		if st.Base.Get(key) < 0 {
			return invalid("negative %s", key)
		}
	}
	if st.AvailablePoints < 0 || st.EarnedReputation < 0 || st.GrantedLevel < 0 {
		return invalid("negative stat counters")
	}
	for id, level := range snap.FarmLevels {
		if _, ok := AnimalDefinitionOf(id); !ok || level < 0 {
			return invalid("farm entry %q=%d", id, level)
		}
	}
	if limit := e.Tuning.MaxPlayerNameLength; limit > 0 && utf8.RuneCountInString(snap.PlayerName) > limit {
		return invalid("player name too long")
	}
	return nil
}

// Restore validates snap and rebuilds a state with fresh caches. The castle
// cost table and the granted level are derived from castle level and
// experience rather than taken from the snapshot.
func (e Engine) Restore(snap Snapshot) (*State, error) {
	if err := e.Validate(snap); err != nil {
		return nil, err
	}
	s := &State{
		Grid:       snap.Grid.Clone(),
		Resources:  snap.Resources,
		Stats:      snap.Stats,
		Farm:       snap.FarmLevels.Clone(),
		PlayerName: snap.PlayerName,
		Inventory:  cloneRaw(snap.Inventory),
		Equipment:  cloneRaw(snap.Equipment),
	}
	if s.PlayerName == "" {
		s.PlayerName = DefaultPlayerName
	}
	for i := range s.Grid.Parcels {
		if p := &s.Grid.Parcels[i]; p.Owned && p.Biome == BiomeCastle {
			p.UpgradeCost = e.Tuning.CastleCostTable(p.Level)
		}
	}
	e.Recompute(s)
	if s.Stats.GrantedLevel < 1 || s.Stats.GrantedLevel > s.Level.Level {
		s.Stats.GrantedLevel = s.Level.Level
	}
	return s, nil
}

// RestoreOrNew falls back to a fresh game when snap is invalid. The second
// return value reports whether a reinitialization happened.
func (e Engine) RestoreOrNew(snap Snapshot) (*State, bool) {
	s, err := e.Restore(snap)
	if err != nil {
		return e.NewGame(), true
	}
	return s, false
}
