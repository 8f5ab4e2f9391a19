package llm

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL      = "https://api.openai.com/v1"
	defaultModel        = "gpt-4o-mini"
	defaultAnthropicURL = "https://api.anthropic.com"
	defaultClaudeModel  = "claude-3-5-haiku-latest"
	defaultTimeout      = 60 * time.Second
	defaultLogLevel     = "info"
	defaultTemperature  = 0.2
	defaultMaxTokens    = 1200

	envProvider       = "LLM_PROVIDER"
	envTimeout        = "LLM_TIMEOUT"
	envAPIKey         = "OPENAI_API_KEY"
	envBaseURL        = "OPENAI_BASE_URL"
	envDefaultModel   = "OPENAI_MODEL"
	envProject        = "OPENAI_PROJECT"
	envAnthropicKey   = "ANTHROPIC_API_KEY"
	envAnthropicURL   = "ANTHROPIC_BASE_URL"
	envAnthropicModel = "ANTHROPIC_MODEL"
)

// Config holds runtime settings for the completion providers.
type Config struct {
	// Provider pins the backend: openai, anthropic or offline. Empty picks
	// the first provider with an API key.
	Provider     string                 `yaml:"provider"`
	BaseURL      string                 `yaml:"base_url"`
	APIKey       string                 `yaml:"api_key"`
	Project      string                 `yaml:"project"`
	DefaultModel string                 `yaml:"default_model"`
	Timeout      time.Duration          `yaml:"-"`
	LogLevel     string                 `yaml:"log_level"`
	Temperature  float64                `yaml:"temperature"`
	MaxTokens    int                    `yaml:"max_tokens"`
	Anthropic    AnthropicConfig        `yaml:"anthropic"`
	Models       map[string]ModelConfig `yaml:"models"`

	timeoutRaw string
}

// AnthropicConfig configures the Anthropic Messages backend.
type AnthropicConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ModelConfig maps a model alias onto a concrete model name.
type ModelConfig struct {
	Provider  string `yaml:"provider"`
	ModelName string `yaml:"model_name"`
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open llm config: %w", err)
	}
	defer f.Close()
	return LoadConfigFromReader(f)
}

// LoadConfigFromReader decodes YAML from r, applies environment overrides
// and defaults, then validates. An omitted temperature keeps the default;
// an explicit 0 is honoured.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read llm config: %w", err)
	}
	cfg := &Config{Temperature: defaultTemperature}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal llm config: %w", err)
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UnmarshalYAML reads timeout as a duration string and keeps values
// already set on c for keys the document omits.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type Plain Config
	doc := struct {
		Plain   `yaml:",inline"`
		Timeout string `yaml:"timeout"`
	}{Plain: Plain(*c), Timeout: c.timeoutRaw}
	if err := node.Decode(&doc); err != nil {
		return err
	}
	*c = Config(doc.Plain)
	c.timeoutRaw = doc.Timeout
	return nil
}

// DefaultConfig returns the settings used when no config file exists,
// with environment overrides applied.
func DefaultConfig() *Config {
	cfg := &Config{Temperature: defaultTemperature}
	_ = cfg.finish()
	return cfg
}

func (c *Config) finish() error {
	c.applyEnvOverrides()
	c.applyDefaults()
	return c.parseTimeout()
}

// Validate checks the configuration for values no provider can use. Missing
// API keys are allowed; they resolve to the offline provider.
func (c *Config) Validate() error {
	switch c.ProviderName() {
	case ProviderOpenAI:
		if strings.TrimSpace(c.BaseURL) == "" {
			return errors.New("llm config: base_url is required")
		}
		if strings.TrimSpace(c.DefaultModel) == "" {
			return errors.New("llm config: default_model is required")
		}
	case ProviderAnthropic, ProviderOffline:
	default:
		return fmt.Errorf("llm config: unknown provider %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return errors.New("llm config: timeout must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("llm config: temperature %.2f out of range [0,2]", c.Temperature)
	}
	if c.MaxTokens < 0 {
		return errors.New("llm config: max_tokens cannot be negative")
	}
	return nil
}

// Model returns the configuration for the given model alias.
func (c *Config) Model(name string) (ModelConfig, bool) {
	m, ok := c.Models[name]
	return m, ok
}

// Clone returns a shallow copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Models != nil {
		cp.Models = maps.Clone(c.Models)
	}
	return &cp
}

func (c *Config) applyDefaults() {
	for _, d := range []struct {
		dst *string
		def string
	}{
		{&c.BaseURL, defaultBaseURL},
		{&c.DefaultModel, defaultModel},
		{&c.Anthropic.BaseURL, defaultAnthropicURL},
		{&c.Anthropic.Model, defaultClaudeModel},
		{&c.LogLevel, defaultLogLevel},
	} {
		if strings.TrimSpace(*d.dst) == "" {
			*d.dst = d.def
		}
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
}

// applyEnvOverrides expands ${VAR} references in string fields, then lets
// the dedicated environment variable of each field win when set.
func (c *Config) applyEnvOverrides() {
	for _, o := range []struct {
		dst *string
		env string
	}{
		{&c.Provider, envProvider},
		{&c.BaseURL, envBaseURL},
		{&c.APIKey, envAPIKey},
		{&c.DefaultModel, envDefaultModel},
		{&c.Project, envProject},
		{&c.Anthropic.APIKey, envAnthropicKey},
		{&c.Anthropic.BaseURL, envAnthropicURL},
		{&c.Anthropic.Model, envAnthropicModel},
		{&c.timeoutRaw, envTimeout},
	} {
		*o.dst = os.ExpandEnv(*o.dst)
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

func (c *Config) parseTimeout() error {
	raw := strings.TrimSpace(c.timeoutRaw)
	if raw == "" {
		c.Timeout = defaultTimeout
		return nil
	}
	d, err := time.ParseDuration(raw)
	switch {
	case err != nil:
		return fmt.Errorf("llm config: invalid timeout %q: %w", raw, err)
	case d <= 0:
		return fmt.Errorf("llm config: timeout must be positive, got %s", d)
	}
	c.Timeout = d
	return nil
}
