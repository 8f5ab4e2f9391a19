package llm

import "strings"

const modelSeparator = "/"

// Provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOffline   = "offline"
)

// ProviderName returns the backend completions should use. An explicit
// provider wins; otherwise OpenAI is used when its key is present, then
// Anthropic, then offline fallbacks.
func (c *Config) ProviderName() string {
	if p := strings.ToLower(strings.TrimSpace(c.Provider)); p != "" {
		return p
	}
	switch {
	case strings.TrimSpace(c.APIKey) != "":
		return ProviderOpenAI
	case strings.TrimSpace(c.Anthropic.APIKey) != "":
		return ProviderAnthropic
	default:
		return ProviderOffline
	}
}

// ResolveModelID maps an alias to the model name sent to the provider. A
// leading "provider/" prefix is dropped.
func ResolveModelID(alias string, cfg ModelConfig) string {
	name := strings.TrimSpace(cfg.ModelName)
	if name == "" {
		name = strings.TrimSpace(alias)
	}
	if _, model := ParseModelID(name); model != "" {
		return model
	}
	return name
}

// ParseModelID splits "provider/model" at the first separator. Unqualified
// ids come back with an empty provider.
func ParseModelID(id string) (provider, model string) {
	if p, m, ok := strings.Cut(id, modelSeparator); ok {
		return p, m
	}
	return "", id
}
