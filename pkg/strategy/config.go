package strategy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxItems = 8
	defaultMaxRecs  = 10
)

var defaultPeers = []string{"Rival A", "Rival B"}

// Config controls generation limits and prompt sources.
type Config struct {
	MaxItems     int      `yaml:"max_items"`
	MaxRecs      int      `yaml:"max_recs"`
	DefaultPeers []string `yaml:"default_peers"`
	// PromptDir overrides embedded prompts file by file when set.
	PromptDir string `yaml:"prompt_dir"`
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open strategy config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read strategy config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal strategy config: %w", err)
	}
	cfg.PromptDir = strings.TrimSpace(os.ExpandEnv(cfg.PromptDir))
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MaxItems == 0 {
		c.MaxItems = defaultMaxItems
	}
	if c.MaxRecs == 0 {
		c.MaxRecs = defaultMaxRecs
	}
	if len(c.DefaultPeers) == 0 {
		c.DefaultPeers = append([]string(nil), defaultPeers...)
	}
}

// Validate ensures configuration sanity.
func (c *Config) Validate() error {
	if c.MaxItems < 1 {
		return errors.New("strategy config: max_items must be positive")
	}
	if c.MaxRecs < 1 {
		return errors.New("strategy config: max_recs must be positive")
	}
	for i, p := range c.DefaultPeers {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("strategy config: default_peers[%d] is empty", i)
		}
	}
	return nil
}
