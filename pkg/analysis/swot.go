package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

const (
	minSWOTScore = 1
	maxSWOTScore = 10
)

// SWOTItem is a single SWOT bullet. Items that only carry text round-trip as
// plain JSON strings; scored items are objects.
type SWOTItem struct {
	Text     string `json:"text"`
	Impact   int    `json:"impact,omitempty"`
	Control  int    `json:"control,omitempty"`
	Priority string `json:"priority,omitempty"`
	Solution string `json:"solution,omitempty"`
}

// PlainItem wraps text as a SWOTItem.
func PlainItem(text string) SWOTItem {
	return SWOTItem{Text: text}
}

// IsPlain reports whether the item carries only text.
func (i SWOTItem) IsPlain() bool {
	return i.Impact == 0 && i.Control == 0 && i.Priority == "" && i.Solution == ""
}

func (i SWOTItem) MarshalJSON() ([]byte, error) {
	if i.IsPlain() {
		return json.Marshal(i.Text)
	}
	type alias SWOTItem
	return json.Marshal(alias(i))
}

func (i *SWOTItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = SWOTItem{}
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = SWOTItemFromValue(raw)
	return nil
}

// SWOTItemFromValue builds an item from a decoded JSON value. Object values
// have impact/control clamped to [1,10] when present.
func SWOTItemFromValue(v any) SWOTItem {
	obj, ok := v.(map[string]any)
	if !ok {
		return SWOTItem{Text: strings.TrimSpace(CoerceString(v))}
	}
	item := SWOTItem{
		Text:     strings.TrimSpace(CoerceString(firstPresent(obj, "text", "item", "title"))),
		Priority: strings.TrimSpace(CoerceString(obj["priority"])),
		Solution: strings.TrimSpace(CoerceString(obj["solution"])),
	}
	if n, ok := CoerceFloat(obj["impact"]); ok {
		item.Impact = Clamp(int(math.Round(n)), minSWOTScore, maxSWOTScore)
	}
	if n, ok := CoerceFloat(obj["control"]); ok {
		item.Control = Clamp(int(math.Round(n)), minSWOTScore, maxSWOTScore)
	}
	return item
}

// SWOT holds the four ordered SWOT lists.
type SWOT struct {
	S []SWOTItem `json:"S"`
	W []SWOTItem `json:"W"`
	O []SWOTItem `json:"O"`
	T []SWOTItem `json:"T"`
}

// NewSWOT builds a SWOT from plain string lists.
func NewSWOT(s, w, o, t []string) SWOT {
	return SWOT{S: PlainItems(s), W: PlainItems(w), O: PlainItems(o), T: PlainItems(t)}
}

// PlainItems wraps each string as a plain SWOTItem.
func PlainItems(texts []string) []SWOTItem {
	out := make([]SWOTItem, 0, len(texts))
	for _, t := range texts {
		out = append(out, PlainItem(t))
	}
	return out
}

// Texts returns the text of each item, skipping blanks.
func Texts(items []SWOTItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Empty reports whether all four lists are empty.
func (s SWOT) Empty() bool {
	return len(s.S) == 0 && len(s.W) == 0 && len(s.O) == 0 && len(s.T) == 0
}

// Complete reports whether every list has at least one item.
func (s SWOT) Complete() bool {
	return len(s.S) > 0 && len(s.W) > 0 && len(s.O) > 0 && len(s.T) > 0
}

// Truncate caps each list at n items.
func (s SWOT) Truncate(n int) SWOT {
	return SWOT{S: TopN(s.S, n), W: TopN(s.W, n), O: TopN(s.O, n), T: TopN(s.T, n)}
}

func (s SWOT) MarshalJSON() ([]byte, error) {
	type alias SWOT
	return json.Marshal(alias{S: orEmpty(s.S), W: orEmpty(s.W), O: orEmpty(s.O), T: orEmpty(s.T)})
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
