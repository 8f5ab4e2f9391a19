package strategy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/llm"
)

// fakeCompleter answers by matching a marker in the user prompt.
type fakeCompleter struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	requests  []llm.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	for marker, resp := range f.responses {
		if strings.Contains(req.User, marker) {
			return resp, nil
		}
	}
	return "", nil
}

var testInputs = analysis.Inputs{
	Company:  "Acme",
	Product:  "Sensor Hub",
	Industry: "Industrial IoT",
	Scope:    "Edge analytics",
	Notes:    "Focus on mid-market",
}

func newTestGenerator(t *testing.T, c llm.Completer, opts ...Option) *Generator {
	t.Helper()
	g, err := NewGenerator(DefaultConfig(), c, opts...)
	require.NoError(t, err)
	return g
}

func TestGeneratorWithoutProviderUsesFallbacks(t *testing.T) {
	g := newTestGenerator(t, nil)
	require.False(t, g.Available())

	swot, src := g.SWOT(context.Background(), testInputs)
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, FallbackSWOT(), swot)
	assert.True(t, ValidateSWOT(swot))

	ansoff, src := g.Ansoff(context.Background(), testInputs)
	assert.Equal(t, SourceFallback, src)
	assert.False(t, ansoff.Empty())

	bench, _ := g.Benchmark(context.Background(), testInputs, nil)
	assert.Equal(t, []string{"Rival A", "Rival B"}, bench.Peers)
	assert.Len(t, bench.Table, len(CapabilityAreas))
	for _, row := range bench.Table {
		for _, name := range []string{"Acme", "Rival A", "Rival B"} {
			assert.NotZero(t, row.Rating(name).Rank(), "%s/%s", row.Capability, name)
		}
	}

	inds, _ := g.Industries(context.Background(), testInputs)
	require.Len(t, inds, 1)
	assert.Equal(t, "Industrial IoT", inds[0].Name)
	assert.NotEmpty(t, inds.LongRecords())

	recs, src := g.GenerateRecommendations(context.Background(), testInputs, analysis.Results{})
	assert.Equal(t, SourceFallback, src)
	assert.NotEmpty(t, recs)

	assert.Empty(t, g.GenerateScope(context.Background(), "Acme"))
}

func TestGeneratorUsesCompletion(t *testing.T) {
	fake := &fakeCompleter{responses: map[string]string{
		"Generate a detailed SWOT": `{"S":["Fast installs"],"W":["Small team"],"O":["EU grants"],"T":["Tariffs"]}`,
		"Ansoff growth matrix":     "```json\n{\"market_penetration\":[\"Volume discounts\"]}\n```",
	}}
	g := newTestGenerator(t, fake, WithSampling(0.7, 900))

	swot, src := g.SWOT(context.Background(), testInputs)
	require.Equal(t, SourceLLM, src)
	assert.Equal(t, []string{"Fast installs"}, analysis.Texts(swot.S))

	ansoff, src := g.Ansoff(context.Background(), testInputs)
	require.Equal(t, SourceLLM, src)
	assert.Equal(t, []string{"Volume discounts"}, ansoff.MarketPenetration)

	require.Len(t, fake.requests, 2)
	req := fake.requests[0]
	assert.Equal(t, systemPrompt, req.System)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Equal(t, 900, req.MaxTokens)
	assert.True(t, req.JSON)
	assert.Contains(t, req.User, "Company: Acme")
	assert.Contains(t, req.User, "Geography: unspecified")
	assert.Contains(t, req.User, "Brand strength, Distribution/Channels")
}

func TestGeneratorFallsBackOnProviderError(t *testing.T) {
	g := newTestGenerator(t, &fakeCompleter{err: errors.New("rate limited")})

	swot, src := g.SWOT(context.Background(), testInputs)
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, FallbackSWOT(), swot)
}

func TestGeneratorFallsBackOnGarbage(t *testing.T) {
	g := newTestGenerator(t, &fakeCompleter{responses: map[string]string{
		"SWOT":      "I'm sorry, I can't do that.",
		"Benchmark": `{"table": []}`,
	}})

	swot, src := g.SWOT(context.Background(), testInputs)
	assert.Equal(t, SourceFallback, src)
	assert.True(t, ValidateSWOT(swot))

	bench, src := g.Benchmark(context.Background(), testInputs, []string{" Globex "})
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, []string{"Globex"}, bench.Peers)
}

func TestGeneratorOffline(t *testing.T) {
	fake := &fakeCompleter{responses: map[string]string{"SWOT": `{"S":["x"],"W":["x"],"O":["x"],"T":["x"]}`}}
	g := newTestGenerator(t, fake)

	off := g.Offline()
	assert.False(t, off.Available())
	assert.True(t, g.Available())

	_, src := off.SWOT(context.Background(), testInputs)
	assert.Equal(t, SourceFallback, src)
	assert.Empty(t, fake.requests)
}

func TestGenerateSelected(t *testing.T) {
	g := newTestGenerator(t, nil)

	results, sources := g.GenerateSelected(context.Background(), testInputs,
		[]analysis.Framework{analysis.FrameworkSWOT, analysis.FrameworkBenchmark, "Fit Matrix"}, nil)

	assert.True(t, results.Has(analysis.FrameworkSWOT))
	assert.True(t, results.Has(analysis.FrameworkBenchmark))
	assert.False(t, results.Has(analysis.FrameworkAnsoff))
	assert.False(t, results.Has(analysis.FrameworkIndustry))
	assert.Equal(t, map[analysis.Framework]Source{
		analysis.FrameworkSWOT:      SourceFallback,
		analysis.FrameworkBenchmark: SourceFallback,
	}, sources)
}

func TestGenerateRecommendationsSeesResults(t *testing.T) {
	fake := &fakeCompleter{responses: map[string]string{
		"strategic recommendations": `{"recs":[{"title":"Channel program","impact":5,"effort":2,"rationale":"Strength in installs"}]}`,
	}}
	g := newTestGenerator(t, fake)

	results := analysis.Results{SWOT: analysis.NewSWOT([]string{"Fast installs"}, nil, nil, nil)}
	recs, src := g.GenerateRecommendations(context.Background(), testInputs, results)
	require.Equal(t, SourceLLM, src)
	require.Len(t, recs, 1)
	assert.Equal(t, "Channel program", recs[0].Title)

	require.Len(t, fake.requests, 1)
	assert.Contains(t, fake.requests[0].User, `"Fast installs"`)
}

func TestGenerateScope(t *testing.T) {
	fake := &fakeCompleter{responses: map[string]string{"primary industry": `{"scope": "Industrial automation"}`}}
	g := newTestGenerator(t, fake)

	assert.Equal(t, "Industrial automation", g.GenerateScope(context.Background(), "Acme"))
	assert.Empty(t, g.GenerateScope(context.Background(), "  "))
	assert.Len(t, fake.requests, 1)
}

func TestRegenerate(t *testing.T) {
	g := newTestGenerator(t, nil)
	results := analysis.Results{SWOT: analysis.NewSWOT([]string{"keep"}, nil, nil, nil)}

	src, err := g.Regenerate(context.Background(), testInputs, analysis.FrameworkAnsoff, nil, &results)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, FallbackAnsoff(), results.Ansoff)
	assert.Equal(t, []string{"keep"}, analysis.Texts(results.SWOT.S))

	_, err = g.Regenerate(context.Background(), testInputs, "Fit Matrix", nil, &results)
	require.ErrorIs(t, err, ErrUnknownFramework)
}

func TestPromptOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scope.tmpl"), []byte("custom scope for {{.Company}}"), 0o644))

	fake := &fakeCompleter{responses: map[string]string{"custom scope": `{"scope": "Retail"}`}}
	cfg := DefaultConfig()
	cfg.PromptDir = dir
	g, err := NewGenerator(cfg, fake)
	require.NoError(t, err)

	assert.Equal(t, "Retail", g.GenerateScope(context.Background(), "Acme"))
	assert.Equal(t, "custom scope for Acme", fake.requests[0].User)
	assert.Len(t, g.PromptDigests(), len(promptNames))
}

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	_, err := NewGenerator(&Config{MaxItems: -1, MaxRecs: 1}, nil)
	require.Error(t, err)
}

func TestGeneratorSWOTKeepsThreeQuadrantAnswer(t *testing.T) {
	c := &fakeCompleter{responses: map[string]string{
		"Generate a detailed SWOT": `{"S":["Live strength"],"W":["Thin margins"],"O":["New channel"],"T":[]}`,
	}}
	g := newTestGenerator(t, c)

	swot, src := g.SWOT(context.Background(), testInputs)
	assert.Equal(t, SourceLLM, src)
	require.Len(t, swot.S, 1)
	assert.Equal(t, "Live strength", swot.S[0].Text)
	assert.Empty(t, swot.T)
}
