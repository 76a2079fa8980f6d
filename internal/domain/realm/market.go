package realm

// sellPrices is gold received per unit. Gold and experience are not traded.
var sellPrices = map[ResourceKind]float64{
	ResourceWood:  1,
	ResourceStone: 1.5,
	ResourceCoal:  3,
	ResourceFood:  0.5,
	ResourceMeat:  2,
}

type MarketPrice struct {
	Kind ResourceKind `json:"kind"`
	Sell float64      `json:"sell"`
	Buy  float64      `json:"buy"`
}

func (t Tuning) MarketPrices() []MarketPrice {
	out := make([]MarketPrice, 0, len(sellPrices))
	for _, kind := range resourceKinds {
		price, ok := sellPrices[kind]
		if !ok {
			continue
		}
		out = append(out, MarketPrice{Kind: kind, Sell: price, Buy: price * t.BuyPriceMultiplier})
	}
	return out
}

func SellPrice(kind ResourceKind) (float64, bool) {
	p, ok := sellPrices[kind]
	return p, ok
}
