package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseModelID(t *testing.T) {
	cases := map[string][2]string{
		"openai/gpt-4o-mini":                {"openai", "gpt-4o-mini"},
		"gpt-4o":                            {"", "gpt-4o"},
		"anthropic/claude-3-5-haiku-latest": {"anthropic", "claude-3-5-haiku-latest"},
		"azure/deployments/strategy":        {"azure", "deployments/strategy"},
		"":                                  {"", ""},
	}
	for in, want := range cases {
		provider, model := ParseModelID(in)
		require.Equal(t, want[0], provider, "provider of %q", in)
		require.Equal(t, want[1], model, "model of %q", in)
	}
}

func TestResolveModelID(t *testing.T) {
	tests := []struct {
		name     string
		alias    string
		cfg      ModelConfig
		expected string
	}{
		{"alias strips provider prefix", "openai/gpt-4o", ModelConfig{}, "gpt-4o"},
		{"model name from config", "fast", ModelConfig{Provider: "openai", ModelName: "gpt-4o-mini"}, "gpt-4o-mini"},
		{"qualified model name from config", "fast", ModelConfig{ModelName: "openai/gpt-4o-mini"}, "gpt-4o-mini"},
		{"alias with whitespace", "  gpt-4o  ", ModelConfig{}, "gpt-4o"},
		{"empty config", "gpt-4o-mini", ModelConfig{}, "gpt-4o-mini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ResolveModelID(tt.alias, tt.cfg))
		})
	}
}

func TestProviderName(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{"no keys", Config{}, ProviderOffline},
		{"openai key", Config{APIKey: "sk"}, ProviderOpenAI},
		{"anthropic key", Config{Anthropic: AnthropicConfig{APIKey: "ak"}}, ProviderAnthropic},
		{"openai preferred", Config{APIKey: "sk", Anthropic: AnthropicConfig{APIKey: "ak"}}, ProviderOpenAI},
		{"explicit wins", Config{Provider: " Offline ", APIKey: "sk"}, ProviderOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.cfg.ProviderName())
		})
	}
}
