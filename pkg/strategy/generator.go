package strategy

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/llm"
	"stratiq-api/pkg/prompt"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

const (
	promptSWOT      = "swot"
	promptAnsoff    = "ansoff"
	promptBenchmark = "benchmark"
	promptIndustry  = "industry"
	promptRecs      = "recs"
	promptScope     = "scope"

	systemPrompt = "Return only strict JSON with the requested keys. No prose, no markdown, no backticks."

	defaultTemperature = 0.2
	defaultMaxTokens   = 1200
)

var promptNames = []string{promptSWOT, promptAnsoff, promptBenchmark, promptIndustry, promptRecs, promptScope}

// Source records where a generated artifact came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Generator produces framework content from a Completer, falling back to
// static content whenever the provider is missing or its output is unusable.
type Generator struct {
	cfg         *Config
	completer   llm.Completer
	prompts     *prompt.Set
	temperature float64
	maxTokens   int
}

// Option customises a Generator.
type Option func(*Generator)

// WithSampling sets the temperature and token limit sent with each completion.
func WithSampling(temperature float64, maxTokens int) Option {
	return func(g *Generator) {
		g.temperature = temperature
		if maxTokens > 0 {
			g.maxTokens = maxTokens
		}
	}
}

// NewGenerator loads prompts and wires the completer. A nil completer yields
// a generator that only serves fallbacks.
func NewGenerator(cfg *Config, completer llm.Completer, opts ...Option) (*Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	set, err := prompt.LoadSet(promptFS, "prompts", cfg.PromptDir, promptNames, prompt.Funcs())
	if err != nil {
		return nil, fmt.Errorf("strategy: load prompts: %w", err)
	}
	g := &Generator{
		cfg:         cfg,
		completer:   completer,
		prompts:     set,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Available reports whether a provider is wired.
func (g *Generator) Available() bool {
	return g != nil && g.completer != nil
}

// Offline returns a copy that never calls the provider.
func (g *Generator) Offline() *Generator {
	cp := *g
	cp.completer = nil
	return &cp
}

// Config returns the generator limits.
func (g *Generator) Config() *Config { return g.cfg }

// PromptDigests lists the loaded prompt digests for startup logging.
func (g *Generator) PromptDigests() []string { return g.prompts.Digests() }

type promptData struct {
	Company      string
	Product      string
	Industry     string
	Feature      string
	Geo          string
	Notes        string
	Capabilities []string
	Peers        []string
	MaxItems     int
	MaxRecs      int
	ResultsJSON  string
}

func (g *Generator) newPromptData(in analysis.Inputs) promptData {
	in = in.Trimmed()
	geo := in.Geo
	if geo == "" {
		geo = "unspecified"
	}
	return promptData{
		Company:      in.Company,
		Product:      in.Product,
		Industry:     in.IndustryOrScope(),
		Feature:      in.Scope,
		Geo:          geo,
		Notes:        in.Notes,
		Capabilities: CapabilityAreas,
		MaxItems:     g.cfg.MaxItems,
		MaxRecs:      g.cfg.MaxRecs,
	}
}

// generate runs one prompt through the completer. Any failure along the way
// is logged and answered with fallback().
func generate[T any](ctx context.Context, g *Generator, name string, data promptData, parse func(string) (T, error), fallback func() T) (T, Source) {
	logger := logx.WithContext(ctx)
	if !g.Available() {
		logger.Debugw("strategy: provider unavailable, using fallback", logx.Field("prompt", name))
		return fallback(), SourceFallback
	}

	user, err := g.prompts.Render(name, data)
	if err != nil {
		logger.Errorw("strategy: render prompt failed", logx.Field("prompt", name), logx.Field("error", err.Error()))
		return fallback(), SourceFallback
	}

	raw, err := g.completer.Complete(ctx, llm.CompletionRequest{
		System:      systemPrompt,
		User:        user,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		JSON:        true,
	})
	if err != nil {
		logger.Errorw("strategy: completion failed", logx.Field("prompt", name), logx.Field("error", err.Error()))
		return fallback(), SourceFallback
	}

	out, err := parse(raw)
	if err != nil {
		logger.Sloww("strategy: unusable completion, using fallback",
			logx.Field("prompt", name),
			logx.Field("error", err.Error()),
			logx.Field("bytes", len(raw)),
		)
		return fallback(), SourceFallback
	}
	logger.Infow("strategy: generated", logx.Field("prompt", name))
	return out, SourceLLM
}

// SWOT generates the four SWOT lists.
func (g *Generator) SWOT(ctx context.Context, in analysis.Inputs) (analysis.SWOT, Source) {
	return generate(ctx, g, promptSWOT, g.newPromptData(in),
		func(raw string) (analysis.SWOT, error) { return parseSWOT(raw, g.cfg.MaxItems) },
		FallbackSWOT)
}

// Ansoff generates the four Ansoff growth lists.
func (g *Generator) Ansoff(ctx context.Context, in analysis.Inputs) (analysis.Ansoff, Source) {
	return generate(ctx, g, promptAnsoff, g.newPromptData(in),
		func(raw string) (analysis.Ansoff, error) { return parseAnsoff(raw, g.cfg.MaxItems) },
		FallbackAnsoff)
}

// Benchmark rates the company against peers. Empty peers use the configured defaults.
func (g *Generator) Benchmark(ctx context.Context, in analysis.Inputs, peers []string) (analysis.Benchmark, Source) {
	peers = g.peersOrDefault(peers)
	data := g.newPromptData(in)
	data.Peers = peers
	return generate(ctx, g, promptBenchmark, data,
		func(raw string) (analysis.Benchmark, error) { return parseBenchmark(raw, peers, g.cfg.MaxItems) },
		func() analysis.Benchmark { return FallbackBenchmark(data.Company, peers) })
}

// Industries generates industry verticals with ordered success categories.
func (g *Generator) Industries(ctx context.Context, in analysis.Inputs) (analysis.Industries, Source) {
	data := g.newPromptData(in)
	return generate(ctx, g, promptIndustry, data,
		func(raw string) (analysis.Industries, error) { return parseIndustries(raw, g.cfg.MaxItems) },
		func() analysis.Industries { return FallbackIndustries(data.Industry) })
}

// GenerateSelected runs every selected framework and reports each one's source.
func (g *Generator) GenerateSelected(ctx context.Context, in analysis.Inputs, frameworks []analysis.Framework, peers []string) (analysis.Results, map[analysis.Framework]Source) {
	var results analysis.Results
	sources := make(map[analysis.Framework]Source, len(frameworks))
	for _, fw := range frameworks {
		switch fw {
		case analysis.FrameworkIndustry:
			results.Industries, sources[fw] = g.Industries(ctx, in)
		case analysis.FrameworkSWOT:
			results.SWOT, sources[fw] = g.SWOT(ctx, in)
		case analysis.FrameworkAnsoff:
			results.Ansoff, sources[fw] = g.Ansoff(ctx, in)
		case analysis.FrameworkBenchmark:
			var b analysis.Benchmark
			b, sources[fw] = g.Benchmark(ctx, in, peers)
			results.Benchmark = &b
		default:
			logx.WithContext(ctx).Sloww("strategy: skipping unknown framework", logx.Field("framework", string(fw)))
		}
	}
	return results, sources
}

// GenerateRecommendations derives scored initiatives from existing results.
func (g *Generator) GenerateRecommendations(ctx context.Context, in analysis.Inputs, results analysis.Results) ([]analysis.Recommendation, Source) {
	data := g.newPromptData(in)
	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		logx.WithContext(ctx).Errorw("strategy: encode results failed", logx.Field("error", err.Error()))
		return FallbackRecommendations(), SourceFallback
	}
	data.ResultsJSON = string(encoded)
	return generate(ctx, g, promptRecs, data,
		func(raw string) ([]analysis.Recommendation, error) { return parseRecommendations(raw, g.cfg.MaxRecs) },
		FallbackRecommendations)
}

// GenerateScope suggests a one-line industry/scope for a company, or "" when
// nothing usable comes back.
func (g *Generator) GenerateScope(ctx context.Context, company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return ""
	}
	scope, _ := generate(ctx, g, promptScope, promptData{Company: company},
		parseScope,
		func() string { return "" })
	return scope
}

func (g *Generator) peersOrDefault(peers []string) []string {
	out := make([]string, 0, len(peers))
	for _, p := range peers {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), g.cfg.DefaultPeers...)
	}
	return out
}

// ErrUnknownFramework is returned by Regenerate for names outside analysis.Frameworks.
var ErrUnknownFramework = errors.New("strategy: unknown framework")

// Regenerate runs a single framework and stores it into results.
func (g *Generator) Regenerate(ctx context.Context, in analysis.Inputs, fw analysis.Framework, peers []string, results *analysis.Results) (Source, error) {
	switch fw {
	case analysis.FrameworkIndustry, analysis.FrameworkSWOT, analysis.FrameworkAnsoff, analysis.FrameworkBenchmark:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFramework, fw)
	}
	out, sources := g.GenerateSelected(ctx, in, []analysis.Framework{fw}, peers)
	results.Merge(out)
	return sources[fw], nil
}
