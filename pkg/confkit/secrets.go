package confkit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSecrets reads a flat YAML file of KEY: value pairs. A missing file
// yields an empty map.
func LoadSecrets(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read secrets %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal secrets %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case map[string]any, []any:
			return nil, fmt.Errorf("secrets %s: %s must be a scalar", path, k)
		default:
			out[k] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
	return out, nil
}

// ApplySecrets exports every secret whose variable is unset or blank in the
// environment and returns the names it set, sorted.
func ApplySecrets(path string) ([]string, error) {
	secrets, err := LoadSecrets(path)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(secrets))
	for k := range secrets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var applied []string
	for _, k := range keys {
		if strings.TrimSpace(os.Getenv(k)) != "" || secrets[k] == "" {
			continue
		}
		if err := os.Setenv(k, secrets[k]); err != nil {
			return applied, fmt.Errorf("set %s: %w", k, err)
		}
		applied = append(applied, k)
	}
	return applied, nil
}
