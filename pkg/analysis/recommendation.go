package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// MaxRecommendations is how many recommendations the impact/effort grid holds.
	MaxRecommendations = 10

	minRecScore     = 1
	maxRecScore     = 5
	defaultRecScore = 3
)

// Recommendation is one initiative scored on impact and effort (1–5).
type Recommendation struct {
	Title     string `json:"title"`
	Impact    int    `json:"impact"`
	Effort    int    `json:"effort"`
	Rationale string `json:"rationale,omitempty"`
}

// ImpactScore returns the impact, defaulting to 3 when unset.
func (r Recommendation) ImpactScore() int {
	if r.Impact == 0 {
		return defaultRecScore
	}
	return r.Impact
}

// EffortScore returns the effort, defaulting to 3 when unset.
func (r Recommendation) EffortScore() int {
	if r.Effort == 0 {
		return defaultRecScore
	}
	return r.Effort
}

// Normalize trims text and clamps impact and effort to [1,5].
func (r Recommendation) Normalize() Recommendation {
	return Recommendation{
		Title:     strings.TrimSpace(r.Title),
		Impact:    Clamp(r.ImpactScore(), minRecScore, maxRecScore),
		Effort:    Clamp(r.EffortScore(), minRecScore, maxRecScore),
		Rationale: strings.TrimSpace(r.Rationale),
	}
}

func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = RecommendationFromMap(obj)
	return nil
}

// RecommendationFromMap reads a recommendation from a decoded JSON object,
// defaulting missing scores to 3.
func RecommendationFromMap(obj map[string]any) Recommendation {
	return Recommendation{
		Title:     strings.TrimSpace(CoerceString(firstPresent(obj, "title", "name"))),
		Impact:    CoerceInt(obj["impact"], defaultRecScore),
		Effort:    CoerceInt(obj["effort"], defaultRecScore),
		Rationale: strings.TrimSpace(CoerceString(obj["rationale"])),
	}
}

// Quadrant is a cell of the impact/effort grid.
type Quadrant int

const (
	QuadrantQuickWins Quadrant = iota
	QuadrantStrategicBets
	QuadrantFillIns
	QuadrantLongShots
)

var quadrantNames = [...]string{"Quick Wins", "Strategic Bets", "Fill-ins", "Long Shots"}

func (q Quadrant) String() string {
	if q < QuadrantQuickWins || q > QuadrantLongShots {
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
	return quadrantNames[q]
}

// Label is the short grid label, Q1 through Q4.
func (q Quadrant) Label() string {
	return fmt.Sprintf("Q%d", int(q)+1)
}

// Quadrant places the recommendation: impact >= 4 is high impact and
// effort > 3 is high effort, so effort 3 counts as low and 4 as high.
func (r Recommendation) Quadrant() Quadrant {
	highImpact := r.ImpactScore() >= 4
	highEffort := r.EffortScore() > 3
	switch {
	case highImpact && !highEffort:
		return QuadrantQuickWins
	case highImpact:
		return QuadrantStrategicBets
	case !highEffort:
		return QuadrantFillIns
	default:
		return QuadrantLongShots
	}
}
