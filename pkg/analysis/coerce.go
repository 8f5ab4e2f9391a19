package analysis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceStrings turns an arbitrary decoded JSON value into a list of trimmed,
// non-empty strings. A scalar becomes a one-item list; nil becomes an empty list.
func CoerceStrings(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(CoerceString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := strings.TrimSpace(CoerceString(val)); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// CoerceString renders a decoded JSON value as text.
func CoerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// CoerceInt reads an integer from a decoded JSON value, returning def when the
// value is absent or not numeric.
func CoerceInt(v any, def int) int {
	f, ok := CoerceFloat(v)
	if !ok {
		return def
	}
	return int(math.Round(f))
}

// CoerceFloat reads a number from a decoded JSON value. Strings such as
// "$120B" or "1,200" are accepted.
func CoerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		cleaned := strings.Map(func(r rune) rune {
			switch {
			case r >= '0' && r <= '9', r == '.', r == '-':
				return r
			default:
				return -1
			}
		}, val)
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TopN keeps at most n items.
func TopN[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
