package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/deck"
	"stratiq-api/pkg/export"
	"stratiq-api/pkg/strategy"
	"stratiq-api/pkg/wizard"
)

// parseList splits on commas, semicolons and tabs, trims and de-duplicates.
// norm, when set, is applied before de-duplication.
func parseList(raw string, norm func(string) string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if norm != nil {
			field = norm(field)
		}
		if _, exists := seen[field]; exists {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, field)
	}
	return out
}

// generate runs the same pipeline as the service: validate, generate the
// selected frameworks, then derive recommendations.
func generate(ctx context.Context, gen *strategy.Generator, in analysis.Inputs, frameworks, peers []string) (*analysis.State, error) {
	s := wizard.NewSession(time.Now())
	s.SetInputs(in, !gen.Available(), time.Now())
	if len(frameworks) > 0 {
		if err := s.SelectFrameworks(frameworks, time.Now()); err != nil {
			return nil, err
		}
	}
	if err := wizard.ValidateForGeneration(s.State); err != nil {
		return nil, err
	}

	run, _ := gen.GenerateSelected(ctx, s.State.Inputs, s.State.Frameworks, peers)
	recs, _ := gen.GenerateRecommendations(ctx, s.State.Inputs, s.MergeResults(run))
	s.MarkGenerated(recs, time.Now())
	return s.State, nil
}

func render(builder *deck.Builder, st *analysis.State, format string, now time.Time) ([]byte, string, error) {
	switch format {
	case "pptx":
		return builder.Render(st)
	case "json":
		return export.JSON(st, now)
	case "swot":
		return export.SWOTJSON(st, now)
	case "xlsx":
		return export.Workbook(st, now)
	default:
		return nil, "", fmt.Errorf("unknown format %q", format)
	}
}
