package realm

type BiomeKind string

const (
	BiomeEmpty   BiomeKind = "empty"
	BiomeCastle  BiomeKind = "castle"
	BiomeForest  BiomeKind = "forest"
	BiomePlains  BiomeKind = "plains"
	BiomeHills   BiomeKind = "hills"
	BiomeSwamp   BiomeKind = "swamp"
	BiomeTundra  BiomeKind = "tundra"
	BiomeLake    BiomeKind = "lake"
	BiomeGrounds BiomeKind = "grounds"

	BiomeMine      BiomeKind = "mine"
	BiomeFarmstead BiomeKind = "farmstead"
	BiomeSawmill   BiomeKind = "sawmill"
)

type BiomeDefinition struct {
	Kind        BiomeKind `json:"kind"`
	Name        string    `json:"name"`
	DisplayCost Resources `json:"display_cost"`
	// Generation is per second for a single parcel before any multiplier.
	Generation        Resources `json:"generation"`
	Unique            bool      `json:"unique"`
	SupportsBuildings bool      `json:"supports_buildings"`
	Building          bool      `json:"building"`
	BuildCost         Resources `json:"build_cost"`
}

// biomeOrder fixes catalog iteration so random picks stay reproducible.
var biomeOrder = []BiomeKind{
	BiomeCastle,
	BiomeForest,
	BiomePlains,
	BiomeHills,
	BiomeSwamp,
	BiomeTundra,
	BiomeLake,
	BiomeGrounds,
	BiomeMine,
	BiomeFarmstead,
	BiomeSawmill,
}

var biomeDefs = map[BiomeKind]BiomeDefinition{
	BiomeCastle: {
		Name:       "Castle",
		Generation: Resources{Gold: 1, Wood: 0.5, Stone: 0.5, Food: 0.5, Experience: 1},
		Unique:     true,
	},
	BiomeForest: {
		Name:        "Forest",
		DisplayCost: Resources{Gold: 100},
		Generation:  Resources{Wood: 1, Food: 0.1},
	},
	BiomePlains: {
		Name:        "Plains",
		DisplayCost: Resources{Gold: 100},
		Generation:  Resources{Food: 1, Gold: 0.2},
	},
	BiomeHills: {
		Name:        "Hills",
		DisplayCost: Resources{Gold: 150},
		Generation:  Resources{Stone: 1, Coal: 0.2},
	},
	BiomeSwamp: {
		Name:        "Swamp",
		DisplayCost: Resources{Gold: 120},
		Generation:  Resources{Coal: 0.5, Experience: 0.3, Gold: -0.1},
	},
	BiomeTundra: {
		Name:        "Tundra",
		DisplayCost: Resources{Gold: 150},
		Generation:  Resources{Stone: 0.3, Coal: 0.5, Food: -0.1},
	},
	BiomeLake: {
		Name:        "Lake",
		DisplayCost: Resources{Gold: 130},
		Generation:  Resources{Food: 0.6, Experience: 0.2},
	},
	BiomeGrounds: {
		Name:              "Grounds",
		DisplayCost:       Resources{Gold: 200},
		Generation:        Resources{Gold: 0.5},
		SupportsBuildings: true,
	},
	BiomeMine: {
		Name:       "Mine",
		Generation: Resources{Stone: 2, Coal: 1, Gold: -0.2},
		Building:   true,
		BuildCost:  Resources{Gold: 500, Wood: 200, Stone: 200},
	},
	BiomeFarmstead: {
		Name:       "Farmstead",
		Generation: Resources{Food: 2, Gold: -0.1},
		Building:   true,
		BuildCost:  Resources{Gold: 400, Wood: 300},
	},
	BiomeSawmill: {
		Name:       "Sawmill",
		Generation: Resources{Wood: 2.5, Gold: -0.1},
		Building:   true,
		BuildCost:  Resources{Gold: 400, Stone: 300},
	},
}

func BiomeDefinitionOf(kind BiomeKind) (BiomeDefinition, bool) {
	def, ok := biomeDefs[kind]
	if !ok {
		return BiomeDefinition{}, false
	}
	def.Kind = kind
	return def, true
}

// Biomes lists the catalog in a stable order.
func Biomes() []BiomeDefinition {
	out := make([]BiomeDefinition, 0, len(biomeOrder))
	for _, kind := range biomeOrder {
		def, _ := BiomeDefinitionOf(kind)
		out = append(out, def)
	}
	return out
}

// IsSelectable reports whether a biome may be assigned by acquisition, either
// randomly or through a manual milestone choice.
func IsSelectable(kind BiomeKind) bool {
	def, ok := biomeDefs[kind]
	return ok && !def.Building
}
