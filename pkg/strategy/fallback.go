package strategy

import (
	"strings"

	"stratiq-api/pkg/analysis"
)

// CapabilityAreas are the capability dimensions used by SWOT and benchmark prompts.
var CapabilityAreas = []string{
	"Brand strength",
	"Distribution/Channels",
	"Pricing/Packaging",
	"Integrations/Partner ecosystem",
	"Security/Compliance",
	"Analytics/AI",
	"Implementation complexity",
	"Support/Success",
}

const fallbackRationale = "Derived from analysis."

// FallbackSWOT is returned whenever a SWOT cannot be generated.
func FallbackSWOT() analysis.SWOT {
	return analysis.NewSWOT(
		[]string{"Clear value proposition", "Growing customer base", "Experienced leadership", "Strong partner interest"},
		[]string{"Limited brand awareness", "Thin mid-market coverage", "Inconsistent messaging"},
		[]string{"Upsell existing accounts", "New geography pilots", "Alliances with integrators"},
		[]string{"Price pressure from low-cost rivals", "Long sales cycles", "Security/compliance scrutiny"},
	)
}

// FallbackAnsoff is returned whenever an Ansoff matrix cannot be generated.
func FallbackAnsoff() analysis.Ansoff {
	return analysis.Ansoff{
		MarketPenetration:  []string{"Bundle add-ons", "Loyalty pricing for top accounts"},
		MarketDevelopment:  []string{"Enter 1–2 adjacent regions", "Partner-led channel pilots"},
		ProductDevelopment: []string{"Launch analytics-lite", "Self-serve onboarding"},
		Diversification:    []string{"Vertical solution pack"},
	}
}

// FallbackBenchmark rates the company and its peers over the capability
// areas. The ratings rotate deterministically so the table is stable.
func FallbackBenchmark(company string, peers []string) analysis.Benchmark {
	company = strings.TrimSpace(company)
	if company == "" {
		company = "Company"
	}
	if len(peers) == 0 {
		peers = defaultPeers
	}
	names := append([]string{company}, peers...)

	b := analysis.Benchmark{Peers: append([]string(nil), peers...)}
	for i, capability := range CapabilityAreas {
		row := analysis.BenchmarkRow{Capability: capability, Ratings: make(map[string]analysis.Rating, len(names))}
		for j, name := range names {
			row.Ratings[name] = analysis.Ratings[(i+j)%len(analysis.Ratings)]
		}
		b.Table = append(b.Table, row)
	}
	return b
}

// FallbackIndustries returns a single generic industry profile.
func FallbackIndustries(industry string) analysis.Industries {
	name := strings.TrimSpace(industry)
	if name == "" {
		name = "General market"
	}
	tam := 120.0
	return analysis.Industries{{
		Name: name,
		TAM:  &tam,
		Categories: analysis.Categories{
			{Name: "Brand", Factors: []string{"Customer trust", "Reference accounts", "Analyst visibility"}},
			{Name: "Economies of Scale", Factors: []string{"Channel reach", "Unit cost of delivery"}},
			{Name: "Capital", Factors: []string{"R&D funding", "Working capital for expansion"}},
		},
	}}
}

// FallbackRecommendations spans all four impact/effort quadrants.
func FallbackRecommendations() []analysis.Recommendation {
	recs := []analysis.Recommendation{
		{Title: "OEM bundle program", Impact: 5, Effort: 3},
		{Title: "Managed calibration add-on", Impact: 4, Effort: 2},
		{Title: "Regional partner launch", Impact: 5, Effort: 4},
		{Title: "Vertical solution pack", Impact: 4, Effort: 5},
		{Title: "Refresh onboarding content", Impact: 3, Effort: 2},
		{Title: "Customer advisory board", Impact: 2, Effort: 3},
		{Title: "Adjacent-market acquisition scan", Impact: 2, Effort: 4},
		{Title: "Usage-based pricing pilot", Impact: 3, Effort: 5},
	}
	for i := range recs {
		recs[i].Rationale = fallbackRationale
	}
	return recs
}
