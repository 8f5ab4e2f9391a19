package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"

	"stratiq-api/pkg/confkit"
	llmpkg "stratiq-api/pkg/llm"
	strategypkg "stratiq-api/pkg/strategy"
)

// Session store kinds.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type SessionConf struct {
	Store string `json:",default=memory,options=memory|redis|postgres"`
	// TTL in seconds; 0 uses the default and a negative value never expires.
	TTL int `json:",default=86400"`
}

type PostgresConf struct {
	DSN string `json:",optional"`
}

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	Env string `json:",default=dev"`
	// Secrets is an optional YAML file of KEY: value pairs exported into the
	// environment before the sections load. Variables already set win.
	Secrets string          `json:",optional"`
	Redis    redis.RedisConf `json:",optional"`
	Postgres PostgresConf    `json:",optional"`
	Session  SessionConf     `json:",optional"`

	LLM      confkit.Section[llmpkg.Config]      `json:",optional"`
	Strategy confkit.Section[strategypkg.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test"
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	cfg, err := confkit.LoadFile[Config](absPath, true)
	if err != nil {
		return nil, err
	}
	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.applySecrets(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "":
		c.Env = "dev"
	case "test", "dev", "prod":
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}

	switch strings.TrimSpace(c.Session.Store) {
	case "":
		c.Session.Store = StoreMemory
	case StoreMemory:
	case StoreRedis:
		if strings.TrimSpace(c.Redis.Host) == "" {
			return errors.New("config: redis.host is required for the redis session store")
		}
	case StorePostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return errors.New("config: postgres.dsn is required for the postgres session store")
		}
	default:
		return fmt.Errorf("config: unknown session store %q", c.Session.Store)
	}
	return nil
}

func (c *Config) applySecrets() error {
	if strings.TrimSpace(c.Secrets) == "" {
		return nil
	}
	path := confkit.ResolvePath(c.baseDir, c.Secrets)
	applied, err := confkit.ApplySecrets(path)
	if err != nil {
		return err
	}
	c.Secrets = path
	if len(applied) > 0 {
		logx.Infow("secrets applied", logx.Field("file", path), logx.Field("keys", applied))
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir

	if err := c.LLM.Hydrate(base, llmpkg.LoadConfig); err != nil {
		return fmt.Errorf("load llm config: %w", err)
	}
	if err := c.Strategy.Hydrate(base, strategypkg.LoadConfig); err != nil {
		return fmt.Errorf("load strategy config: %w", err)
	}
	return nil
}

// LLMConfig returns the hydrated LLM section or the environment-only default.
func (c *Config) LLMConfig() *llmpkg.Config {
	return c.LLM.Get(llmpkg.DefaultConfig)
}

// StrategyConfig returns the hydrated strategy section or built-in limits.
func (c *Config) StrategyConfig() *strategypkg.Config {
	return c.Strategy.Get(strategypkg.DefaultConfig)
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
