package realm

import "math"

type ResourceKind string

const (
	ResourceGold       ResourceKind = "gold"
	ResourceWood       ResourceKind = "wood"
	ResourceStone      ResourceKind = "stone"
	ResourceCoal       ResourceKind = "coal"
	ResourceFood       ResourceKind = "food"
	ResourceMeat       ResourceKind = "meat"
	ResourceExperience ResourceKind = "experience"
)

var resourceKinds = []ResourceKind{
	ResourceGold,
	ResourceWood,
	ResourceStone,
	ResourceCoal,
	ResourceFood,
	ResourceMeat,
	ResourceExperience,
}

// ResourceKinds returns every resource kind in display order.
func ResourceKinds() []ResourceKind {
	out := make([]ResourceKind, len(resourceKinds))
	copy(out, resourceKinds)
	return out
}

func IsResourceKind(kind ResourceKind) bool {
	for _, k := range resourceKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Resources is used both for stockpiles and for cost tables.
type Resources struct {
	Gold       float64 `json:"gold"`
	Wood       float64 `json:"wood"`
	Stone      float64 `json:"stone"`
	Coal       float64 `json:"coal"`
	Food       float64 `json:"food"`
	Meat       float64 `json:"meat"`
	Experience float64 `json:"experience"`
}

func (r *Resources) ptr(kind ResourceKind) *float64 {
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

func (r Resources) Get(kind ResourceKind) float64 {
	if p := r.ptr(kind); p != nil {
		return *p
	}
	return 0
}

func (r *Resources) Set(kind ResourceKind, amount float64) {
	if p := r.ptr(kind); p != nil {
		*p = amount
	}
}

func (r *Resources) Add(kind ResourceKind, amount float64) {
	if p := r.ptr(kind); p != nil {
		*p += amount
	}
}

// Covers reports whether r holds at least every component of cost.
func (r Resources) Covers(cost Resources) bool {
	for _, kind := range resourceKinds {
		if r.Get(kind) < cost.Get(kind) {
			return false
		}
	}
	return true
}

func (r *Resources) Subtract(cost Resources) {
	for _, kind := range resourceKinds {
		r.Add(kind, -cost.Get(kind))
	}
}

func (r Resources) IsZero() bool {
	return r == Resources{}
}

// Valid reports whether every amount is finite and non-negative.
func (r Resources) Valid() bool {
	for _, kind := range resourceKinds {
		v := r.Get(kind)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

func (r *Resources) clampNonNegative() {
	for _, kind := range resourceKinds {
		v := r.Get(kind)
		if math.IsNaN(v) || v < 0 {
			r.Set(kind, 0)
		}
	}
}
