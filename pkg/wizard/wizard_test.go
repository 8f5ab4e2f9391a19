package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratiq-api/pkg/analysis"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestStepBounds(t *testing.T) {
	s := NewSession(t0)
	require.Equal(t, StepInputs, s.Step)

	s.Back(t0)
	assert.Equal(t, StepInputs, s.Step)

	for i := 0; i < 10; i++ {
		s.Advance(t0.Add(time.Minute))
	}
	assert.Equal(t, StepExport, s.Step)
	assert.Equal(t, t0.Add(time.Minute), s.UpdatedAt)

	s.Back(t0)
	assert.Equal(t, StepRecommendations, s.Step)
	assert.Equal(t, "Recommendations", s.Step.String())
	assert.Equal(t, "Step(9)", Step(9).String())
}

func TestResetStartsFreshAnalysis(t *testing.T) {
	s := NewSession(t0)
	s.SetInputs(analysis.Inputs{Company: "Acme", Product: "Hub"}, true, t0)
	s.Advance(t0)
	oldID := s.State.AnalysisID

	s.Reset(t0.Add(time.Hour))
	assert.Equal(t, StepInputs, s.Step)
	assert.NotEqual(t, oldID, s.State.AnalysisID)
	assert.Empty(t, s.State.Company)
	assert.False(t, s.State.OfflineMode)
	assert.Equal(t, analysis.DefaultFrameworks, s.State.Frameworks)
}

func TestSessionsAreIndependent(t *testing.T) {
	a, b := NewSession(t0), NewSession(t0)
	a.SetInputs(analysis.Inputs{Company: "A"}, false, t0)
	assert.Empty(t, b.State.Company)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestValidateInputs(t *testing.T) {
	s := NewSession(t0)
	require.ErrorIs(t, ValidateInputs(s.State), ErrMissingRequired)
	assert.EqualError(t, ValidateInputs(s.State), "Company and Product are required.")

	s.SetInputs(analysis.Inputs{Company: " Acme ", Product: "  "}, false, t0)
	require.ErrorIs(t, ValidateInputs(s.State), ErrMissingRequired)

	s.SetInputs(analysis.Inputs{Company: " Acme ", Product: "Hub"}, false, t0)
	require.NoError(t, ValidateInputs(s.State))
	assert.Equal(t, "Acme", s.State.Company)

	s.State.Frameworks = nil
	require.ErrorIs(t, ValidateForGeneration(s.State), ErrNoFrameworks)
	require.ErrorIs(t, ValidateInputs(nil), ErrMissingRequired)
}

func TestSelectFrameworks(t *testing.T) {
	s := NewSession(t0)
	require.NoError(t, s.SelectFrameworks([]string{"swot", "Industry Analysis", "SWOT", "ind"}, t0))
	assert.Equal(t, []analysis.Framework{analysis.FrameworkSWOT, analysis.FrameworkIndustry}, s.State.Frameworks)

	require.ErrorIs(t, s.SelectFrameworks(nil, t0), ErrNoFrameworks)
	require.ErrorIs(t, s.SelectFrameworks([]string{"Fit Matrix"}, t0), ErrUnknownFramework)
	assert.Len(t, s.State.Frameworks, 2, "failed selection keeps the previous one")
}

func TestAddRecommendation(t *testing.T) {
	s := NewSession(t0)
	require.ErrorIs(t, s.AddRecommendation(analysis.Recommendation{Title: "  "}, t0), ErrMissingTitle)

	require.NoError(t, s.AddRecommendation(analysis.Recommendation{Title: "Pilot", Impact: 9}, t0))
	require.Len(t, s.State.Recs, 1)
	assert.Equal(t, analysis.Recommendation{Title: "Pilot", Impact: 5, Effort: 3}, s.State.Recs[0])
}

func TestTextListConversion(t *testing.T) {
	text := "- First item\n\n  • Second item  \n\t-Third\r\n   \n"
	assert.Equal(t, []string{"First item", "Second item", "Third"}, TextToList(text))
	assert.Equal(t, []string{}, TextToList(""))

	items := []string{"a", "b"}
	assert.Equal(t, items, TextToList(ListToText(items)))
}

func TestEditResults(t *testing.T) {
	s := NewSession(t0)
	later := t0.Add(time.Minute)

	require.NoError(t, s.EditResults(analysis.FrameworkSWOT, []byte(`{
		"S": "- Brand\n- Team\n",
		"W": ["Reach", "  "],
		"O": [{"text": "Exports", "impact": 12, "control": 4}],
		"T": []
	}`), later))
	swot := s.State.Results.SWOT
	assert.Equal(t, []string{"Brand", "Team"}, analysis.Texts(swot.S))
	assert.Equal(t, []string{"Reach"}, analysis.Texts(swot.W))
	require.Len(t, swot.O, 1)
	assert.Equal(t, 10, swot.O[0].Impact)
	assert.Empty(t, swot.T)
	assert.Equal(t, later, s.UpdatedAt)

	require.NoError(t, s.EditResults(analysis.FrameworkAnsoff, []byte(`{
		"market_penetration": "Bundle\nLoyalty",
		"diversification": ["Pack"]
	}`), later))
	assert.Equal(t, []string{"Bundle", "Loyalty"}, s.State.Results.Ansoff.MarketPenetration)
	assert.Equal(t, []string{"Pack"}, s.State.Results.Ansoff.Diversification)
	assert.Empty(t, s.State.Results.Ansoff.MarketDevelopment)

	require.NoError(t, s.EditResults(analysis.FrameworkBenchmark, []byte(`{
		"peers": ["Rival A"],
		"table": [{"capability": "Pricing", "Acme": "High", "Rival A": "Low"}]
	}`), later))
	require.NotNil(t, s.State.Results.Benchmark)
	assert.Equal(t, analysis.RatingHigh, s.State.Results.Benchmark.Table[0].Rating("Acme"))

	require.NoError(t, s.EditResults(analysis.FrameworkIndustry, []byte(`[{"industry_vertical_name": "Robotics", "TAM": 80}]`), later))
	require.Len(t, s.State.Results.Industries, 1)
	assert.Equal(t, "Robotics", s.State.Results.Industries[0].Name)
}

func TestEditResultsErrors(t *testing.T) {
	s := NewSession(t0)
	require.ErrorIs(t, s.EditResults(analysis.FrameworkSWOT, []byte(`["a"]`), t0), ErrInvalidEdit)
	require.ErrorIs(t, s.EditResults(analysis.FrameworkAnsoff, []byte(`null`), t0), ErrInvalidEdit)
	require.ErrorIs(t, s.EditResults(analysis.FrameworkBenchmark, []byte(`{`), t0), ErrInvalidEdit)
	err := s.EditResults(analysis.FrameworkBenchmark, []byte(`{
		"peers": ["Rival A"],
		"table": [{"capability": "Pricing", "Acme": "Strong", "Rival A": "Low"}]
	}`), t0)
	require.ErrorIs(t, err, ErrInvalidEdit)
	assert.Contains(t, err.Error(), "Strong")
	assert.Nil(t, s.State.Results.Benchmark)
	require.ErrorIs(t, s.EditResults(analysis.Framework("Fit"), []byte(`{}`), t0), ErrUnknownFramework)
	assert.Equal(t, t0, s.UpdatedAt)
}

func TestMarkGenerated(t *testing.T) {
	s := NewSession(t0)
	results := analysis.Results{SWOT: analysis.NewSWOT([]string{"Brand"}, nil, nil, nil)}
	recs := []analysis.Recommendation{{Title: "Pilot", Impact: 4, Effort: 2}}

	assert.Equal(t, results, s.MergeResults(results))
	s.MarkGenerated(recs, t0.Add(time.Hour))
	assert.Equal(t, StepReview, s.Step)
	assert.Equal(t, results, s.State.Results)
	assert.Equal(t, recs, s.State.Recs)
	assert.Equal(t, t0.Add(time.Hour), s.UpdatedAt)

	recs[0].Title = "Changed"
	assert.Equal(t, "Pilot", s.State.Recs[0].Title)

	s.MarkGenerated(nil, t0)
	assert.NotNil(t, s.State.Recs)
	assert.Empty(t, s.State.Recs)
}

func TestMergeResultsKeepsEarlierFrameworks(t *testing.T) {
	s := NewSession(t0)
	require.NoError(t, s.EditResults(analysis.FrameworkAnsoff,
		[]byte(`{"market_penetration": ["Loyalty bundle"]}`), t0))

	merged := s.MergeResults(analysis.Results{SWOT: analysis.NewSWOT([]string{"Brand"}, nil, nil, nil)})
	assert.Equal(t, []string{"Loyalty bundle"}, merged.Ansoff.MarketPenetration)
	assert.Equal(t, "Brand", merged.SWOT.S[0].Text)
	assert.Equal(t, merged, s.State.Results)

	s.MergeResults(analysis.Results{SWOT: analysis.NewSWOT([]string{"Reach"}, nil, nil, nil)})
	assert.Equal(t, "Reach", s.State.Results.SWOT.S[0].Text)
	assert.Equal(t, []string{"Loyalty bundle"}, s.State.Results.Ansoff.MarketPenetration)
}
