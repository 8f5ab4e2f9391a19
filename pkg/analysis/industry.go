package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Category is one critical-success category with its ranked factors.
type Category struct {
	Name    string
	Factors []string
}

// Categories keeps critical-success categories in the order they were received.
type Categories []Category

func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(orEmpty(cat.Factors))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}
	out := Categories{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("categories: %s: %w", name, err)
		}
		out = append(out, Category{Name: name, Factors: factorsFromValue(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

// A non-list factor value becomes a single factor.
func factorsFromValue(v any) []string {
	if list, ok := v.([]any); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, CoerceString(item))
		}
		return out
	}
	if v == nil {
		return []string{}
	}
	return []string{CoerceString(v)}
}

// Industry describes one industry vertical.
type Industry struct {
	Name       string     `json:"industry_vertical_name"`
	TAM        *float64   `json:"TAM,omitempty"`
	Categories Categories `json:"Critical_success_category"`
}

// TAMText formats the TAM for display; blank when unknown.
func (i Industry) TAMText() string {
	if i.TAM == nil {
		return ""
	}
	return strconv.FormatFloat(*i.TAM, 'f', -1, 64)
}

func (i *Industry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Industry
	if v, ok := raw["industry_vertical_name"]; ok {
		var name any
		if err := json.Unmarshal(v, &name); err != nil {
			return err
		}
		out.Name = strings.TrimSpace(CoerceString(name))
	}
	if v, ok := raw["TAM"]; ok {
		var tam any
		if err := json.Unmarshal(v, &tam); err != nil {
			return err
		}
		if f, ok := CoerceFloat(tam); ok {
			out.TAM = &f
		}
	}
	cats, ok := raw["Critical_success_category"]
	if !ok {
		cats, ok = raw["Critical Success category"]
	}
	if ok {
		if err := json.Unmarshal(cats, &out.Categories); err != nil {
			return fmt.Errorf("industry %q: %w", out.Name, err)
		}
	}
	*i = out
	return nil
}

// Industries is the "ind" result. It decodes from either a bare list or an
// {"industries": [...]} wrapper and always encodes as a list.
type Industries []Industry

func (in *Industries) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*in = nil
		return nil
	}
	switch data[0] {
	case '[':
		var list []Industry
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*in = list
		return nil
	case '{':
		var wrapper struct {
			Industries []Industry `json:"industries"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return err
		}
		*in = wrapper.Industries
		return nil
	default:
		return errors.New("industries: expected list or object")
	}
}

func (in Industries) MarshalJSON() ([]byte, error) {
	return json.Marshal(orEmpty([]Industry(in)))
}

// LongRecord is one flattened industry row.
type LongRecord struct {
	Industry string
	TAM      string
	Category string
	Rank     int
	Factor   string
}

// LongRecordHeaders are the column headers for LongRecord tables.
var LongRecordHeaders = []string{"Industry", "TAM (B$)", "Category", "Rank", "Factor"}

// Cells returns the record in LongRecordHeaders order.
func (r LongRecord) Cells() []string {
	return []string{r.Industry, r.TAM, r.Category, strconv.Itoa(r.Rank), r.Factor}
}

// LongRecords flattens every category factor into one row, ranked from 1
// within its category.
func (in Industries) LongRecords() []LongRecord {
	var out []LongRecord
	for _, ind := range in {
		tam := ind.TAMText()
		for _, cat := range ind.Categories {
			for rank, factor := range cat.Factors {
				out = append(out, LongRecord{
					Industry: ind.Name,
					TAM:      tam,
					Category: cat.Name,
					Rank:     rank + 1,
					Factor:   factor,
				})
			}
		}
	}
	return out
}
