package analysis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Framework names a strategy framework the user can select.
type Framework string

const (
	FrameworkIndustry  Framework = "Industry Analysis"
	FrameworkSWOT      Framework = "SWOT"
	FrameworkAnsoff    Framework = "Ansoff"
	FrameworkBenchmark Framework = "Benchmark"
)

// Frameworks lists the selectable frameworks in display order.
var Frameworks = []Framework{FrameworkIndustry, FrameworkSWOT, FrameworkAnsoff, FrameworkBenchmark}

// DefaultFrameworks is the selection of a fresh state.
var DefaultFrameworks = []Framework{FrameworkSWOT, FrameworkAnsoff}

// ParseFramework accepts a display name or result key, ignoring case.
func ParseFramework(s string) (Framework, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, fw := range Frameworks {
		if norm == strings.ToLower(string(fw)) || norm == strings.ToLower(fw.Key()) {
			return fw, nil
		}
	}
	if norm == "industry" {
		return FrameworkIndustry, nil
	}
	return "", fmt.Errorf("unknown framework %q", s)
}

// Key returns the results key the framework is stored under.
func (f Framework) Key() string {
	if f == FrameworkIndustry {
		return "ind"
	}
	return string(f)
}

// Results holds generated framework output keyed as in the exported JSON.
type Results struct {
	Industries Industries `json:"ind"`
	SWOT       SWOT       `json:"SWOT"`
	Ansoff     Ansoff     `json:"Ansoff"`
	Benchmark  *Benchmark `json:"Benchmark,omitempty"`
}

// Has reports whether the framework has any content.
func (r Results) Has(fw Framework) bool {
	switch fw {
	case FrameworkIndustry:
		return len(r.Industries) > 0
	case FrameworkSWOT:
		return !r.SWOT.Empty()
	case FrameworkAnsoff:
		return !r.Ansoff.Empty()
	case FrameworkBenchmark:
		return r.Benchmark != nil && !r.Benchmark.Empty()
	default:
		return false
	}
}

// Merge copies every framework present in other over r.
func (r *Results) Merge(other Results) {
	if other.Has(FrameworkIndustry) {
		r.Industries = other.Industries
	}
	if other.Has(FrameworkSWOT) {
		r.SWOT = other.SWOT
	}
	if other.Has(FrameworkAnsoff) {
		r.Ansoff = other.Ansoff
	}
	if other.Benchmark != nil {
		r.Benchmark = other.Benchmark
	}
}

// Inputs are the user-entered fields the generator works from.
type Inputs struct {
	Company  string `json:"company"`
	Product  string `json:"product"`
	Industry string `json:"industry"`
	Scope    string `json:"scope"`
	Geo      string `json:"geo"`
	Notes    string `json:"notes"`
}

// Trimmed returns a copy with surrounding whitespace removed.
func (in Inputs) Trimmed() Inputs {
	return Inputs{
		Company:  strings.TrimSpace(in.Company),
		Product:  strings.TrimSpace(in.Product),
		Industry: strings.TrimSpace(in.Industry),
		Scope:    strings.TrimSpace(in.Scope),
		Geo:      strings.TrimSpace(in.Geo),
		Notes:    strings.TrimSpace(in.Notes),
	}
}

// IndustryOrScope returns the industry, or the scope when no industry was given.
func (in Inputs) IndustryOrScope() string {
	if s := strings.TrimSpace(in.Industry); s != "" {
		return s
	}
	return strings.TrimSpace(in.Scope)
}

// State is the per-session analysis document.
type State struct {
	AnalysisID string `json:"analysis_id"`
	Inputs
	Frameworks  []Framework      `json:"frameworks"`
	Results     Results          `json:"results"`
	Recs        []Recommendation `json:"recs"`
	OfflineMode bool             `json:"offline_mode"`
}

// NewState returns an empty state with a fresh analysis id.
func NewState() *State {
	return &State{
		AnalysisID: uuid.NewString(),
		Frameworks: append([]Framework(nil), DefaultFrameworks...),
		Recs:       []Recommendation{},
	}
}

// Selected reports whether fw is among the chosen frameworks.
func (s *State) Selected(fw Framework) bool {
	for _, f := range s.Frameworks {
		if f == fw {
			return true
		}
	}
	return false
}

// TopRecs returns at most MaxRecommendations normalized recommendations.
func (s *State) TopRecs() []Recommendation {
	recs := TopN(s.Recs, MaxRecommendations)
	out := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Normalize())
	}
	return out
}
