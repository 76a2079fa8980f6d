package realm

const (
	DefaultGridWidth  = 15
	DefaultGridHeight = 15

	StartingGold = 150

	ParcelBaseCost        = 100
	ParcelScalingBase     = 1.1
	ParcelScalingStep     = 0.02
	ParcelScalingInterval = 10

	XPBase          = 1000
	XPGrowth        = 1.1
	XPPerParcel     = 10
	MaxPlayerLevel  = 500
	StatPointsPerLv = 3

	AdjacencyBonus        = 0.25
	CastleLevelMultiplier = 1.5
	CastleMaxLevel        = 10

	ManualBiomeInterval = 4
	ReputationPerParcel = 1
	MaxTileCostDiscount = 25
	PlainsMeatBonus     = 0.05
	BuyPriceMultiplier  = 2

	MaxPlayerNameLength = 9

	MaxTickMillis    = 5 * 60 * 1000
	OfflineCapMillis = 8 * 60 * 60 * 1000
)

// Tuning carries every balance knob the engine reads. The zero value is not
// usable; start from DefaultTuning.
type Tuning struct {
	GridWidth  int `yaml:"grid_width" json:"grid_width"`
	GridHeight int `yaml:"grid_height" json:"grid_height"`

	StartingGold float64 `yaml:"starting_gold" json:"starting_gold"`

	ParcelBaseCost        float64 `yaml:"parcel_base_cost" json:"parcel_base_cost"`
	ParcelScalingBase     float64 `yaml:"parcel_scaling_base" json:"parcel_scaling_base"`
	ParcelScalingStep     float64 `yaml:"parcel_scaling_step" json:"parcel_scaling_step"`
	ParcelScalingInterval int     `yaml:"parcel_scaling_interval" json:"parcel_scaling_interval"`

	XPBase             float64 `yaml:"xp_base" json:"xp_base"`
	XPGrowth           float64 `yaml:"xp_growth" json:"xp_growth"`
	XPPerParcel        float64 `yaml:"xp_per_parcel" json:"xp_per_parcel"`
	MaxPlayerLevel     int     `yaml:"max_player_level" json:"max_player_level"`
	StatPointsPerLevel int     `yaml:"stat_points_per_level" json:"stat_points_per_level"`

	AdjacencyBonus        float64 `yaml:"adjacency_bonus" json:"adjacency_bonus"`
	CastleLevelMultiplier float64 `yaml:"castle_level_multiplier" json:"castle_level_multiplier"`
	CastleMaxLevel        int     `yaml:"castle_max_level" json:"castle_max_level"`

	ManualBiomeInterval int     `yaml:"manual_biome_interval" json:"manual_biome_interval"`
	ReputationPerParcel int     `yaml:"reputation_per_parcel" json:"reputation_per_parcel"`
	MaxTileCostDiscount float64 `yaml:"max_tile_cost_discount" json:"max_tile_cost_discount"`
	PlainsMeatBonus     float64 `yaml:"plains_meat_bonus" json:"plains_meat_bonus"`
	BuyPriceMultiplier  float64 `yaml:"buy_price_multiplier" json:"buy_price_multiplier"`

	MaxPlayerNameLength int `yaml:"max_player_name_length" json:"max_player_name_length"`

	MaxTickMillis    float64 `yaml:"max_tick_millis" json:"max_tick_millis"`
	OfflineCapMillis float64 `yaml:"offline_cap_millis" json:"offline_cap_millis"`
}

func DefaultTuning() Tuning {
	return Tuning{
		GridWidth:             DefaultGridWidth,
		GridHeight:            DefaultGridHeight,
		StartingGold:          StartingGold,
		ParcelBaseCost:        ParcelBaseCost,
		ParcelScalingBase:     ParcelScalingBase,
		ParcelScalingStep:     ParcelScalingStep,
		ParcelScalingInterval: ParcelScalingInterval,
		XPBase:                XPBase,
		XPGrowth:              XPGrowth,
		XPPerParcel:           XPPerParcel,
		MaxPlayerLevel:        MaxPlayerLevel,
		StatPointsPerLevel:    StatPointsPerLv,
		AdjacencyBonus:        AdjacencyBonus,
		CastleLevelMultiplier: CastleLevelMultiplier,
		CastleMaxLevel:        CastleMaxLevel,
		ManualBiomeInterval:   ManualBiomeInterval,
		ReputationPerParcel:   ReputationPerParcel,
		MaxTileCostDiscount:   MaxTileCostDiscount,
		PlainsMeatBonus:       PlainsMeatBonus,
		BuyPriceMultiplier:    BuyPriceMultiplier,
		MaxPlayerNameLength:   MaxPlayerNameLength,
		MaxTickMillis:         MaxTickMillis,
		OfflineCapMillis:      OfflineCapMillis,
	}
}
