package realm

import "math"

// ParcelCost is the undiscounted gold price of the next parcel when owned
// parcels are already held. The exponential base steps up every
// ParcelScalingInterval parcels.
func (t Tuning) ParcelCost(owned int) int {
	if owned < 0 {
		owned = 0
	}
	interval := t.ParcelScalingInterval
	if interval < 1 {
		interval = 1
	}
	factor := t.ParcelScalingBase + float64(owned/interval)*t.ParcelScalingStep
	return floorToInt(t.ParcelBaseCost * math.Pow(factor, float64(owned)))
}

// ApplyDiscount removes discountPct percent from cost, rounding down.
func ApplyDiscount(cost int, discountPct float64) int {
	if math.IsNaN(discountPct) || discountPct < 0 {
		discountPct = 0
	}
	if discountPct > 100 {
		discountPct = 100
	}
	return floorToInt(float64(cost) * (1 - discountPct/100))
}

// floorToInt saturates at math.MaxInt so late-game costs stay monotonic.
func floorToInt(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(math.Floor(v))
}

// XPThreshold is the experience required to advance from level to level+1.
func (t Tuning) XPThreshold(level int) float64 {
	if level < 1 {
		level = 1
	}
	return math.Floor(t.XPBase * math.Pow(t.XPGrowth, float64(level-1)))
}

func (t Tuning) XPGainOnAcquire(owned int, xpGainMultiplier float64) float64 {
	if owned < 0 {
		owned = 0
	}
	return t.XPPerParcel * (1 + float64(owned)/10) * (1 + xpGainMultiplier/100)
}
