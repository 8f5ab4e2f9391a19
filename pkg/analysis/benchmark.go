package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRating marks a benchmark cell that is not on the rating scale.
var ErrUnknownRating = errors.New("rating is not on the scale")

// Rating is a capability rating on the ordered scale Low < Medium < High < Best-in-class.
type Rating string

const (
	RatingLow         Rating = "Low"
	RatingMedium      Rating = "Medium"
	RatingHigh        Rating = "High"
	RatingBestInClass Rating = "Best-in-class"
)

// Ratings lists the scale in ascending order.
var Ratings = []Rating{RatingLow, RatingMedium, RatingHigh, RatingBestInClass}

// ParseRating matches s against the scale, ignoring case and separators.
func ParseRating(s string) (Rating, bool) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "low":
		return RatingLow, true
	case "medium", "med", "mid":
		return RatingMedium, true
	case "high":
		return RatingHigh, true
	case "bestinclass", "best":
		return RatingBestInClass, true
	default:
		return "", false
	}
}

// Rank returns the 1-based position on the scale, 0 when unrated.
func (r Rating) Rank() int {
	for i, v := range Ratings {
		if v == r {
			return i + 1
		}
	}
	return 0
}

const capabilityKey = "capability"

// BenchmarkRow rates one capability for the subject company and each peer.
// On the wire it is a flat object: {"capability": ..., "<name>": "<rating>"}.
type BenchmarkRow struct {
	Capability string
	Ratings    map[string]Rating
}

// Rating returns the rating recorded for name.
func (r BenchmarkRow) Rating(name string) Rating {
	if r.Ratings == nil {
		return ""
	}
	return r.Ratings[name]
}

func (r BenchmarkRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(r.Ratings)+1)
	for name, rating := range r.Ratings {
		flat[name] = string(rating)
	}
	flat[capabilityKey] = r.Capability
	return json.Marshal(flat)
}

func (r *BenchmarkRow) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = BenchmarkRowFromMap(obj)
	return nil
}

// BenchmarkRowFromMap reads a row from a decoded JSON object. Ratings outside
// the scale are kept as empty cells.
func BenchmarkRowFromMap(obj map[string]any) BenchmarkRow {
	row := BenchmarkRow{Ratings: make(map[string]Rating, len(obj))}
	for k, v := range obj {
		if strings.EqualFold(k, capabilityKey) {
			row.Capability = strings.TrimSpace(CoerceString(v))
			continue
		}
		rating, _ := ParseRating(CoerceString(v))
		row.Ratings[k] = rating
	}
	return row
}

// Benchmark compares the subject company with named peers.
type Benchmark struct {
	Peers []string       `json:"peers"`
	Table []BenchmarkRow `json:"table"`
}

// Empty reports whether there are no rows to render.
func (b Benchmark) Empty() bool {
	return len(b.Table) == 0
}

func (b Benchmark) MarshalJSON() ([]byte, error) {
	type alias Benchmark
	return json.Marshal(alias{Peers: orEmpty(b.Peers), Table: orEmpty(b.Table)})
}

// ParseBenchmarkStrict decodes a benchmark in its JSON shape for user edits.
// Unlike the lenient row decoding used for model output, a non-blank cell
// off the rating scale is an error rather than an empty cell.
func ParseBenchmarkStrict(data []byte) (Benchmark, error) {
	var doc struct {
		Peers []string         `json:"peers"`
		Table []map[string]any `json:"table"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Benchmark{}, err
	}
	b := Benchmark{Peers: doc.Peers, Table: make([]BenchmarkRow, 0, len(doc.Table))}
	for i, obj := range doc.Table {
		for k, v := range obj {
			cell := strings.TrimSpace(CoerceString(v))
			if strings.EqualFold(k, capabilityKey) || cell == "" {
				continue
			}
			if _, ok := ParseRating(cell); !ok {
				return Benchmark{}, fmt.Errorf("%w: row %d %s=%q", ErrUnknownRating, i+1, k, cell)
			}
		}
		b.Table = append(b.Table, BenchmarkRowFromMap(obj))
	}
	return b, nil
}
