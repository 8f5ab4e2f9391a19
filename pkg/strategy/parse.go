package strategy

import (
	"encoding/json"
	"strings"

	"stratiq-api/pkg/analysis"
)

func parseSWOT(raw string, maxItems int) (analysis.SWOT, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return analysis.SWOT{}, err
	}
	swot := analysis.SWOT{
		S: swotItems(lookup(obj, "S", "strengths")),
		W: swotItems(lookup(obj, "W", "weaknesses")),
		O: swotItems(lookup(obj, "O", "opportunities")),
		T: swotItems(lookup(obj, "T", "threats")),
	}
	if swot.Empty() {
		return analysis.SWOT{}, errNoContent
	}
	return swot.Truncate(maxItems), nil
}

func swotItems(v any) []analysis.SWOTItem {
	list, ok := v.([]any)
	if !ok {
		if v == nil {
			return nil
		}
		list = []any{v}
	}
	out := make([]analysis.SWOTItem, 0, len(list))
	for _, it := range list {
		item := analysis.SWOTItemFromValue(it)
		if item.Text != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseAnsoff(raw string, maxItems int) (analysis.Ansoff, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return analysis.Ansoff{}, err
	}
	a := analysis.Ansoff{
		MarketPenetration:  analysis.CoerceStrings(obj["market_penetration"]),
		MarketDevelopment:  analysis.CoerceStrings(obj["market_development"]),
		ProductDevelopment: analysis.CoerceStrings(obj["product_development"]),
		Diversification:    analysis.CoerceStrings(obj["diversification"]),
	}
	if a.Empty() {
		return analysis.Ansoff{}, errNoContent
	}
	return a.Truncate(maxItems), nil
}

func parseBenchmark(raw string, peers []string, maxItems int) (analysis.Benchmark, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return analysis.Benchmark{}, err
	}
	b := analysis.Benchmark{Peers: analysis.CoerceStrings(obj["peers"])}
	if len(b.Peers) == 0 {
		b.Peers = append([]string(nil), peers...)
	}
	rows, _ := obj["table"].([]any)
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		row := analysis.BenchmarkRowFromMap(m)
		if row.Capability == "" {
			continue
		}
		b.Table = append(b.Table, row)
	}
	if len(b.Table) == 0 {
		return analysis.Benchmark{}, errNoContent
	}
	b.Table = analysis.TopN(b.Table, maxItems)
	return b, nil
}

// parseIndustries decodes from the raw object text so category order
// survives.
func parseIndustries(raw string, maxItems int) (analysis.Industries, error) {
	obj, err := extractObject(raw)
	if err != nil {
		return nil, err
	}
	var list analysis.Industries
	if err := json.Unmarshal(obj, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		var single analysis.Industry
		if err := json.Unmarshal(obj, &single); err == nil {
			list = analysis.Industries{single}
		}
	}

	out := make(analysis.Industries, 0, len(list))
	for _, ind := range list {
		if ind.Name == "" && len(ind.Categories) == 0 {
			continue
		}
		out = append(out, ind)
	}
	if len(out) == 0 {
		return nil, errNoContent
	}
	return analysis.TopN(out, maxItems), nil
}

func parseRecommendations(raw string, maxRecs int) ([]analysis.Recommendation, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	list, _ := lookup(obj, "recs", "recommendations").([]any)
	out := make([]analysis.Recommendation, 0, len(list))
	for _, it := range list {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rec := analysis.RecommendationFromMap(m).Normalize()
		if rec.Title == "" {
			continue
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, errNoContent
	}
	return analysis.TopN(out, maxRecs), nil
}

func parseScope(raw string) (string, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return "", err
	}
	scope := strings.TrimSpace(analysis.CoerceString(lookup(obj, "scope", "industry")))
	if i := strings.IndexAny(scope, "\r\n"); i >= 0 {
		scope = strings.TrimSpace(scope[:i])
	}
	if scope == "" {
		return "", errNoContent
	}
	return scope, nil
}

// lookup returns the first key present, matching case-insensitively.
func lookup(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v
		}
	}
	for _, k := range keys {
		for ok, v := range obj {
			if strings.EqualFold(ok, k) {
				return v
			}
		}
	}
	return nil
}
