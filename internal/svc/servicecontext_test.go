package svc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratiq-api/internal/config"
	"stratiq-api/internal/session"
	anthropicpkg "stratiq-api/pkg/anthropic"
	"stratiq-api/pkg/confkit"
	llmpkg "stratiq-api/pkg/llm"
	"stratiq-api/pkg/strategy"
)

type stubCompleter struct{}

func (stubCompleter) Complete(context.Context, llmpkg.CompletionRequest) (string, error) {
	return "", nil
}

func offlineConfig() config.Config {
	return config.Config{
		Env: "test",
		LLM: confkit.Section[llmpkg.Config]{Value: &llmpkg.Config{Provider: llmpkg.ProviderOffline}},
	}
}

func TestBuildOffline(t *testing.T) {
	svcCtx, err := Build(offlineConfig())
	require.NoError(t, err)

	assert.Equal(t, llmpkg.ProviderOffline, svcCtx.Provider)
	assert.Nil(t, svcCtx.Completer)
	assert.False(t, svcCtx.Generator.Available())
	assert.NotNil(t, svcCtx.Deck)
	assert.IsType(t, &session.MemoryStore{}, svcCtx.Sessions)
	assert.Equal(t, strategy.DefaultConfig(), svcCtx.StrategyConfig)
}

func TestBuildDegradesWhenProviderInitFails(t *testing.T) {
	cfg := config.Config{
		Env: "test",
		LLM: confkit.Section[llmpkg.Config]{Value: &llmpkg.Config{
			Provider:     llmpkg.ProviderOpenAI,
			BaseURL:      "https://api.openai.com/v1",
			DefaultModel: "gpt-4o-mini",
			Timeout:      time.Second,
		}},
	}

	svcCtx, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, llmpkg.ProviderOffline, svcCtx.Provider)
	assert.Nil(t, svcCtx.Completer)
	assert.False(t, svcCtx.Generator.Available())
}

func TestBuildOptions(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	store := session.NewMemoryStore(time.Minute)

	svcCtx, err := Build(offlineConfig(),
		WithCompleter(stubCompleter{}, llmpkg.ProviderOpenAI),
		WithStore(store),
		WithClock(func() time.Time { return fixed }),
	)
	require.NoError(t, err)

	assert.Equal(t, llmpkg.ProviderOpenAI, svcCtx.Provider)
	assert.True(t, svcCtx.Generator.Available())
	assert.Same(t, store, svcCtx.Sessions)
	assert.Equal(t, fixed, svcCtx.Now())

	svcCtx, err = Build(offlineConfig(), WithCompleter(nil, llmpkg.ProviderOpenAI))
	require.NoError(t, err)
	assert.Equal(t, llmpkg.ProviderOffline, svcCtx.Provider)
}

func TestBuildTestEnvUsesCheapModel(t *testing.T) {
	llmCfg := &llmpkg.Config{
		APIKey:       "sk-test",
		BaseURL:      "http://localhost",
		DefaultModel: "gpt-4o",
		Timeout:      time.Second,
	}
	cfg := config.Config{Env: "test", LLM: confkit.Section[llmpkg.Config]{Value: llmCfg}}

	svcCtx, err := Build(cfg, WithCompleter(stubCompleter{}, llmpkg.ProviderOpenAI))
	require.NoError(t, err)
	assert.Equal(t, testModel, svcCtx.LLMConfig.DefaultModel)
	assert.Equal(t, "gpt-4o", llmCfg.DefaultModel, "configured section is left untouched")

	cfg.Env = "dev"
	svcCtx, err = Build(cfg, WithCompleter(stubCompleter{}, llmpkg.ProviderOpenAI))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", svcCtx.LLMConfig.DefaultModel)
}

func TestBuildUnknownStore(t *testing.T) {
	cfg := offlineConfig()
	cfg.Session.Store = "etcd"
	_, err := Build(cfg)
	require.Error(t, err)
}

func TestNewCompleter(t *testing.T) {
	completer, err := NewCompleter(&llmpkg.Config{Provider: llmpkg.ProviderOffline})
	require.NoError(t, err)
	assert.Nil(t, completer)

	completer, err = NewCompleter(&llmpkg.Config{
		APIKey:       "sk-test",
		BaseURL:      "http://localhost",
		DefaultModel: "gpt-4o-mini",
		Timeout:      time.Second,
		LogLevel:     "error",
	})
	require.NoError(t, err)
	assert.IsType(t, &llmpkg.Client{}, completer)

	completer, err = NewCompleter(&llmpkg.Config{
		Timeout:   time.Second,
		LogLevel:  "error",
		Anthropic: llmpkg.AnthropicConfig{APIKey: "ak-test", BaseURL: "http://localhost", Model: "claude-3-5-haiku-latest"},
	})
	require.NoError(t, err)
	assert.IsType(t, &anthropicpkg.Provider{}, completer)

	_, err = NewCompleter(&llmpkg.Config{Provider: "gemini"})
	require.Error(t, err)
}
