package analysis

import "encoding/json"

// Ansoff holds growth initiatives per quadrant of the Ansoff matrix.
type Ansoff struct {
	MarketPenetration  []string `json:"market_penetration"`
	MarketDevelopment  []string `json:"market_development"`
	ProductDevelopment []string `json:"product_development"`
	Diversification    []string `json:"diversification"`
}

// Empty reports whether no quadrant has initiatives.
func (a Ansoff) Empty() bool {
	return len(a.MarketPenetration) == 0 && len(a.MarketDevelopment) == 0 &&
		len(a.ProductDevelopment) == 0 && len(a.Diversification) == 0
}

// Truncate caps each list at n items.
func (a Ansoff) Truncate(n int) Ansoff {
	return Ansoff{
		MarketPenetration:  TopN(a.MarketPenetration, n),
		MarketDevelopment:  TopN(a.MarketDevelopment, n),
		ProductDevelopment: TopN(a.ProductDevelopment, n),
		Diversification:    TopN(a.Diversification, n),
	}
}

func (a Ansoff) MarshalJSON() ([]byte, error) {
	type alias Ansoff
	return json.Marshal(alias{
		MarketPenetration:  orEmpty(a.MarketPenetration),
		MarketDevelopment:  orEmpty(a.MarketDevelopment),
		ProductDevelopment: orEmpty(a.ProductDevelopment),
		Diversification:    orEmpty(a.Diversification),
	})
}
