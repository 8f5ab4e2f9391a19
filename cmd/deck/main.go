// Command deck generates a strategy analysis from the command line and writes
// its exports without running the HTTP service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/svc"
	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/confkit"
	"stratiq-api/pkg/deck"
	llmpkg "stratiq-api/pkg/llm"
	"stratiq-api/pkg/strategy"
)

func fatalf(format string, args ...interface{}) {
	logx.Errorf(format, args...)
	os.Exit(1)
}

func main() {
	var (
		llmPath      = flag.String("llm-config", "etc/llm.yaml", "path to llm client configuration")
		strategyPath = flag.String("strategy-config", "etc/strategy.yaml", "path to strategy configuration")
		statePath    = flag.String("state", "", "render a previously exported analysis JSON instead of generating")
		company      = flag.String("company", "", "company name")
		product      = flag.String("product", "", "product or offering")
		industry     = flag.String("industry", "", "industry")
		geo          = flag.String("geo", "", "geography")
		notes        = flag.String("notes", "", "free-form notes for the prompts")
		frameworks   = flag.String("frameworks", "SWOT,Ansoff", "comma-separated frameworks to run")
		peers        = flag.String("peers", "", "comma-separated benchmark peers")
		offline      = flag.Bool("offline", false, "skip the llm provider and use built-in content")
		formats      = flag.String("formats", "pptx,json", "comma-separated outputs: pptx, json, swot, xlsx")
		outDir       = flag.String("out", ".", "output directory")
	)
	flag.Parse()
	logx.MustSetup(logx.LogConf{})
	logx.DisableStat()

	outputs := parseList(*formats, strings.ToLower)
	if len(outputs) == 0 {
		fatalf("no output formats provided; use --formats to specify at least one")
	}

	confkit.LoadDotenvOnce()

	var (
		st  *analysis.State
		err error
	)
	if *statePath != "" {
		st, err = loadState(*statePath)
		if err != nil {
			fatalf("load state: %v", err)
		}
	} else {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		gen, genErr := newGenerator(*llmPath, *strategyPath, *offline)
		if genErr != nil {
			fatalf("init generator: %v", genErr)
		}
		in := analysis.Inputs{
			Company:  *company,
			Product:  *product,
			Industry: *industry,
			Geo:      *geo,
			Notes:    *notes,
		}.Trimmed()
		st, err = generate(ctx, gen, in, parseList(*frameworks, nil), parseList(*peers, nil))
		if err != nil {
			fatalf("generate: %v", err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatalf("create output dir: %v", err)
	}
	now := time.Now()
	builder := deck.NewBuilder(deck.WithClock(func() time.Time { return now }))
	for _, format := range outputs {
		data, name, renderErr := render(builder, st, format, now)
		if renderErr != nil {
			fatalf("render %s: %v", format, renderErr)
		}
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fatalf("write %s: %v", path, err)
		}
		logx.Infof("wrote %s (%d bytes)", path, len(data))
	}
}

func newGenerator(llmPath, strategyPath string, offline bool) (*strategy.Generator, error) {
	strategyCfg := strategy.DefaultConfig()
	if _, err := os.Stat(strategyPath); err == nil {
		if strategyCfg, err = strategy.LoadConfig(strategyPath); err != nil {
			return nil, err
		}
	}

	llmCfg := llmpkg.DefaultConfig()
	if _, err := os.Stat(llmPath); err == nil {
		if llmCfg, err = llmpkg.LoadConfig(llmPath); err != nil {
			return nil, err
		}
	}
	var completer llmpkg.Completer
	if !offline {
		c, err := svc.NewCompleter(llmCfg)
		if err != nil {
			return nil, err
		}
		completer = c
	}
	logx.Infof("llm provider: %s", providerLabel(llmCfg, completer))

	return strategy.NewGenerator(strategyCfg, completer,
		strategy.WithSampling(llmCfg.Temperature, llmCfg.MaxTokens))
}

func providerLabel(cfg *llmpkg.Config, completer llmpkg.Completer) string {
	if completer == nil {
		return llmpkg.ProviderOffline
	}
	return cfg.ProviderName()
}

func loadState(path string) (*analysis.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	st := analysis.NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if st.Recs == nil {
		st.Recs = []analysis.Recommendation{}
	}
	return st, nil
}
