package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/cache"
	"stratiq-api/internal/config"
	"stratiq-api/pkg/confkit"
)

// ConfigSummaryLines describes the loaded server config, one "label: value"
// line per concern, in startup order.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}
	entries := [][2]string{
		{"Environment", cfg.Env},
		{"Listen", fmt.Sprintf("%s:%d (timeout %dms)", cfg.Host, cfg.Port, cfg.Timeout)},
		{"Session store", fmt.Sprintf("%s (ttl %s)", cfg.Session.Store, ttlText(cfg.Session.TTL))},
		{"Redis", configured(cfg.Redis.Host)},
		{"Postgres", configured(cfg.Postgres.DSN)},
		{"Secrets", orNone(cfg.Secrets)},
	}
	out := make([]string, 0, len(entries)+3)
	for _, e := range entries {
		out = append(out, e[0]+": "+e[1])
	}
	return append(out,
		sectionLine("LLM config", cfg.LLM),
		sectionLine("Strategy config", cfg.Strategy),
		"LLM provider: "+cfg.LLMConfig().ProviderName(),
	)
}

// LogConfigSummary writes ConfigSummaryLines to logx at info level.
func LogConfigSummary(cfg *config.Config) {
	logx.Info("configuration summary")
	for _, line := range ConfigSummaryLines(cfg) {
		logx.Infof("config • %s", line)
	}
}

func configured(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not configured"
	}
	return "configured"
}

func orNone(path string) string {
	if strings.TrimSpace(path) == "" {
		return "none"
	}
	return path
}

func ttlText(seconds int) string {
	if ttl := cache.SessionTTL(seconds); ttl > 0 {
		return ttl.Round(time.Second).String()
	}
	return "never expires"
}

func sectionLine[T any](name string, s confkit.Section[T]) string {
	value := "not configured"
	if f := strings.TrimSpace(s.File); f != "" {
		value = f
	} else if s.Value != nil {
		value = "inline"
	}
	return name + ": " + value
}
