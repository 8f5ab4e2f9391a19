package svc

import (
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/config"
	"stratiq-api/internal/session"
	anthropicpkg "stratiq-api/pkg/anthropic"
	"stratiq-api/pkg/deck"
	llmpkg "stratiq-api/pkg/llm"
	"stratiq-api/pkg/strategy"
)

// testModel is the low-cost OpenAI model used when Env is test.
const testModel = "gpt-4o-mini"

type ServiceContext struct {
	Config config.Config

	LLMConfig      *llmpkg.Config
	StrategyConfig *strategy.Config
	// Provider is openai, anthropic or offline.
	Provider  string
	Completer llmpkg.Completer
	Generator *strategy.Generator
	Deck      *deck.Builder
	Sessions  session.Store

	Now func() time.Time
}

// Option overrides a dependency, mostly for tests.
type Option func(*ServiceContext)

// WithCompleter replaces the provider built from config. A nil completer
// forces offline mode.
func WithCompleter(c llmpkg.Completer, provider string) Option {
	return func(s *ServiceContext) {
		s.Completer = c
		s.Provider = provider
		if c == nil {
			s.Provider = llmpkg.ProviderOffline
		}
	}
}

// WithStore replaces the configured session store.
func WithStore(store session.Store) Option {
	return func(s *ServiceContext) { s.Sessions = store }
}

// WithClock overrides time.Now for sessions, exports and decks.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceContext) {
		if now != nil {
			s.Now = now
		}
	}
}

func NewServiceContext(c config.Config) *ServiceContext {
	svcCtx, err := Build(c)
	logx.Must(err)
	return svcCtx
}

// Build wires every dependency from c, applying opts after the defaults
// are resolved but before anything is constructed from them.
func Build(c config.Config, opts ...Option) (*ServiceContext, error) {
	svcCtx := &ServiceContext{
		Config:         c,
		LLMConfig:      c.LLMConfig(),
		StrategyConfig: c.StrategyConfig(),
		Now:            time.Now,
	}
	// Apply test environment defaults: use a low-cost model.
	if c.IsTestEnv() && svcCtx.LLMConfig.ProviderName() == llmpkg.ProviderOpenAI {
		llmCfg := svcCtx.LLMConfig.Clone()
		llmCfg.DefaultModel = testModel
		svcCtx.LLMConfig = llmCfg
	}

	svcCtx.Provider = svcCtx.LLMConfig.ProviderName()
	for _, opt := range opts {
		opt(svcCtx)
	}

	// A provider that cannot be initialised degrades to offline fallbacks.
	if svcCtx.Completer == nil && svcCtx.Provider != llmpkg.ProviderOffline {
		completer, err := NewCompleter(svcCtx.LLMConfig)
		if err != nil {
			logx.Errorw("llm provider init failed", logx.Field("provider", svcCtx.Provider), logx.Field("error", err.Error()))
		}
		svcCtx.Completer = completer
	}
	if svcCtx.Completer == nil {
		svcCtx.Provider = llmpkg.ProviderOffline
	}
	logProvider(svcCtx)

	gen, err := strategy.NewGenerator(svcCtx.StrategyConfig, svcCtx.Completer,
		strategy.WithSampling(svcCtx.LLMConfig.Temperature, svcCtx.LLMConfig.MaxTokens))
	if err != nil {
		return nil, fmt.Errorf("init generator: %w", err)
	}
	svcCtx.Generator = gen
	svcCtx.Deck = deck.NewBuilder(deck.WithClock(svcCtx.Now))

	if svcCtx.Sessions == nil {
		store, err := session.New(&c)
		if err != nil {
			return nil, err
		}
		svcCtx.Sessions = store
	}
	return svcCtx, nil
}

// NewCompleter builds the completer for the configured provider. Offline
// yields a nil completer and no error.
func NewCompleter(cfg *llmpkg.Config) (llmpkg.Completer, error) {
	logger := llmpkg.NewLogger(cfg.LogLevel)
	switch name := cfg.ProviderName(); name {
	case llmpkg.ProviderOpenAI:
		client, err := llmpkg.NewClient(cfg, llmpkg.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("init openai client: %w", err)
		}
		return client, nil
	case llmpkg.ProviderAnthropic:
		provider, err := anthropicpkg.NewProvider(cfg, anthropicpkg.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("init anthropic provider: %w", err)
		}
		return provider, nil
	case llmpkg.ProviderOffline:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", name)
	}
}

func logProvider(s *ServiceContext) {
	if s.Provider == llmpkg.ProviderOffline {
		logx.Infow("llm provider unavailable, serving offline fallbacks")
		return
	}
	model := s.LLMConfig.DefaultModel
	if s.Provider == llmpkg.ProviderAnthropic {
		model = s.LLMConfig.Anthropic.Model
	}
	logx.Infow("llm provider ready", logx.Field("provider", s.Provider), logx.Field("model", model))
}
