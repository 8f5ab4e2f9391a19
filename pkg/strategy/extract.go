package strategy

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	errEmptyResponse = errors.New("empty response")
	errNoJSON        = errors.New("no json object")
	errNoContent     = errors.New("no usable content")
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// ExtractJSON decodes the JSON object in model output. It tries the whole
// text, then a fenced code block, then the span from the first '{' to the
// last '}'. Anything undecodable yields an empty map.
func ExtractJSON(text string) map[string]any {
	obj, err := decodeObject(text)
	if err != nil {
		return map[string]any{}
	}
	return obj
}

func decodeObject(text string) (map[string]any, error) {
	raw, err := extractObject(text)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errNoJSON
	}
	return out, nil
}

func extractObject(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errEmptyResponse
	}

	candidates := []string{text}
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		candidates = append(candidates, text[start:end+1])
	}

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if strings.HasPrefix(c, "{") && json.Valid([]byte(c)) {
			return json.RawMessage(c), nil
		}
	}
	return nil, errNoJSON
}
