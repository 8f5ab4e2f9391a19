package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratiq-api/pkg/llm"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NO_DOTENV", "1")
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_TIMEOUT", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"OPENAI_PROJECT", "ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL", "ANTHROPIC_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadWithSections(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()
	t.Setenv("STRATIQ_TEST_MODEL", "gpt-x")

	writeFile(t, dir, "llm.yaml", `
base_url: https://llm.example/v1
default_model: ${STRATIQ_TEST_MODEL}
timeout: 2s
`)
	writeFile(t, dir, "strategy.yaml", `
max_items: 5
default_peers: ["Globex", "Initech"]
`)
	writeFile(t, dir, "secrets.yaml", "OPENAI_API_KEY: sk-from-secrets\n")
	main := writeFile(t, dir, "stratiq.yaml", `
Name: stratiq-api
Host: 127.0.0.1
Port: 8888
Env: test
Secrets: secrets.yaml
Session:
  TTL: 600
LLM:
  File: llm.yaml
Strategy:
  File: strategy.yaml
`)

	cfg, err := Load(main)
	require.NoError(t, err)
	assert.True(t, cfg.IsTestEnv())
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, 600, cfg.Session.TTL)
	assert.Equal(t, dir, cfg.BaseDir())
	assert.Equal(t, main, cfg.MainPath())
	assert.Equal(t, filepath.Join(dir, "secrets.yaml"), cfg.Secrets)

	llmCfg := cfg.LLMConfig()
	assert.Equal(t, "https://llm.example/v1", llmCfg.BaseURL)
	assert.Equal(t, "gpt-x", llmCfg.DefaultModel)
	assert.Equal(t, "sk-from-secrets", llmCfg.APIKey)
	assert.Equal(t, llm.ProviderOpenAI, llmCfg.ProviderName())

	strat := cfg.StrategyConfig()
	assert.Equal(t, 5, strat.MaxItems)
	assert.Equal(t, []string{"Globex", "Initech"}, strat.DefaultPeers)
}

func TestLoadDefaultsWithoutSections(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()
	main := writeFile(t, dir, "stratiq.yaml", "Name: stratiq-api\nPort: 8888\n")

	cfg, err := Load(main)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 86400, cfg.Session.TTL)
	assert.Nil(t, cfg.LLM.Value)
	assert.Equal(t, llm.ProviderOffline, cfg.LLMConfig().ProviderName())
	assert.Equal(t, 8, cfg.StrategyConfig().MaxItems)
}

func TestLoadErrors(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	main := writeFile(t, dir, "bad-section.yaml", "Name: s\nPort: 1\nLLM:\n  File: nope.yaml\n")
	_, err = Load(main)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load llm config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{name: "defaults", cfg: Config{}},
		{name: "prod", cfg: Config{Env: "prod"}},
		{name: "bad env", cfg: Config{Env: "staging"}, errMsg: "env must be one of"},
		{name: "redis without host", cfg: Config{Session: SessionConf{Store: StoreRedis}}, errMsg: "redis.host"},
		{name: "postgres without dsn", cfg: Config{Session: SessionConf{Store: StorePostgres}}, errMsg: "postgres.dsn"},
		{name: "postgres with dsn", cfg: Config{Session: SessionConf{Store: StorePostgres}, Postgres: PostgresConf{DSN: "postgres://localhost/stratiq"}}},
		{name: "unknown store", cfg: Config{Session: SessionConf{Store: "etcd"}}, errMsg: "unknown session store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	cfg := Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
}
