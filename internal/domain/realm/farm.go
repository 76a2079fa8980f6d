package realm

import "math"

type AnimalID string

const (
	AnimalChicken AnimalID = "chicken"
	AnimalPig     AnimalID = "pig"
	AnimalSheep   AnimalID = "sheep"
	AnimalCow     AnimalID = "cow"
)

type AnimalDefinition struct {
	ID                AnimalID `json:"id"`
	Name              string   `json:"name"`
	BaseCost          float64  `json:"base_cost"`
	CostScaling       float64  `json:"cost_scaling"`
	BaseProduction    float64  `json:"base_production"`
	ProductionScaling float64  `json:"production_scaling"`
}

var animalDefs = []AnimalDefinition{
	{ID: AnimalChicken, Name: "Chicken", BaseCost: 50, CostScaling: 1.15, BaseProduction: 0.1, ProductionScaling: 1.1},
	{ID: AnimalPig, Name: "Pig", BaseCost: 250, CostScaling: 1.18, BaseProduction: 0.5, ProductionScaling: 1.1},
	{ID: AnimalSheep, Name: "Sheep", BaseCost: 1000, CostScaling: 1.2, BaseProduction: 1.5, ProductionScaling: 1.12},
	{ID: AnimalCow, Name: "Cow", BaseCost: 5000, CostScaling: 1.22, BaseProduction: 5, ProductionScaling: 1.15},
}

func Animals() []AnimalDefinition {
	out := make([]AnimalDefinition, len(animalDefs))
	copy(out, animalDefs)
	return out
}

func AnimalDefinitionOf(id AnimalID) (AnimalDefinition, bool) {
	for _, def := range animalDefs {
		if def.ID == id {
			return def, true
		}
	}
	return AnimalDefinition{}, false
}

// FarmLevels maps an animal to how many times it was bought; absent means 0.
type FarmLevels map[AnimalID]int

func (f FarmLevels) Clone() FarmLevels {
	out := make(FarmLevels, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Cost is the food price of taking the animal from level to level+1.
func (d AnimalDefinition) Cost(level int) float64 {
	if level < 0 {
		level = 0
	}
	return math.Floor(d.BaseCost * math.Pow(d.CostScaling, float64(level)))
}

// Production is meat per second at level.
func (d AnimalDefinition) Production(level int) float64 {
	if level <= 0 {
		return 0
	}
	return d.BaseProduction * math.Pow(d.ProductionScaling, float64(level-1))
}

// MeatRate sums every animal and applies the plains bonus.
func (t Tuning) MeatRate(farm FarmLevels, plains int) float64 {
	total := 0.0
	for _, def := range animalDefs {
		total += def.Production(farm[def.ID])
	}
	return total * (1 + t.PlainsMeatBonus*float64(plains))
}
