// Package config loads balance tuning from YAML over the compiled-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"idlarz/internal/domain/realm"
	"idlarz/internal/domain/terrain"
)

const (
	AssignUniform = "uniform"
	AssignTerrain = "terrain"
)

var ErrInvalidBalance = errors.New("invalid balance")

type Balance struct {
	Tuning          realm.Tuning `yaml:"tuning" json:"tuning"`
	BiomeAssignment string       `yaml:"biome_assignment" json:"biome_assignment"`
	Seed            int64        `yaml:"seed" json:"seed"`
}

func Default() Balance {
	return Balance{
		Tuning:          realm.DefaultTuning(),
		BiomeAssignment: AssignUniform,
		Seed:            1,
	}
}

// Load reads path and overlays it on Default. An empty path yields the defaults.
func Load(path string) (Balance, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Balance{}, fmt.Errorf("read balance %s: %w", path, err)
	}
	b, err := Parse(raw)
	if err != nil {
		return Balance{}, fmt.Errorf("balance %s: %w", path, err)
	}
	return b, nil
}

// Parse decodes raw YAML; keys left out keep their default value.
func Parse(raw []byte) (Balance, error) {
	b := Default()
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return Balance{}, fmt.Errorf("%w: %v", ErrInvalidBalance, err)
	}
	if err := b.Validate(); err != nil {
		return Balance{}, err
	}
	return b, nil
}

func (b Balance) Validate() error {
	t := b.Tuning
	invalid := func(field string) error {
		return fmt.Errorf("%w: %s", ErrInvalidBalance, field)
	}
	switch {
	case t.GridWidth < 3 || t.GridHeight < 3:
		return invalid("grid must be at least 3x3")
	case t.StartingGold < 0:
		return invalid("starting_gold")
	case t.ParcelBaseCost <= 0 || t.ParcelScalingBase < 1 || t.ParcelScalingStep < 0 || t.ParcelScalingInterval < 1:
		return invalid("parcel cost curve")
	case t.XPBase <= 0 || t.XPGrowth < 1 || t.XPPerParcel < 0:
		return invalid("xp curve")
	case t.MaxPlayerLevel < 1 || t.StatPointsPerLevel < 0:
		return invalid("player level")
	case t.AdjacencyBonus < 0 || t.CastleLevelMultiplier < 1 || t.CastleMaxLevel < 1:
		return invalid("production multipliers")
	case t.ManualBiomeInterval < 0 || t.ReputationPerParcel < 0:
		return invalid("acquisition rewards")
	case t.MaxTileCostDiscount < 0 || t.MaxTileCostDiscount > 100:
		return invalid("max_tile_cost_discount")
	case t.PlainsMeatBonus < 0 || t.BuyPriceMultiplier < 1:
		return invalid("market and farm")
	case t.MaxPlayerNameLength < 1:
		return invalid("max_player_name_length")
	case t.MaxTickMillis <= 0 || t.OfflineCapMillis < 0:
		return invalid("tick limits")
	}
	if b.BiomeAssignment != AssignUniform && b.BiomeAssignment != AssignTerrain {
		return invalid("biome_assignment must be uniform or terrain")
	}
	return nil
}

func (b Balance) Picker() realm.BiomePicker {
	if b.BiomeAssignment == AssignTerrain {
		return terrain.NewPicker(b.Seed)
	}
	return realm.NewUniformPicker(b.Seed)
}

func (b Balance) Engine() realm.Engine {
	return realm.NewEngine(b.Tuning, b.Picker())
}
