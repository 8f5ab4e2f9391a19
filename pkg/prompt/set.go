package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

// Set is a named collection of templates. Each name resolves to
// "<name>.tmpl", read from an override directory when the file exists there
// and from the base filesystem otherwise.
type Set struct {
	templates map[string]*Template
}

// LoadSet parses every named template. overrideDir may be empty.
func LoadSet(base fs.FS, baseDir, overrideDir string, names []string, funcs template.FuncMap) (*Set, error) {
	s := &Set{templates: make(map[string]*Template, len(names))}
	for _, name := range names {
		file := name + ".tmpl"
		var (
			tpl *Template
			err error
		)
		if overrideDir != "" {
			candidate := filepath.Join(overrideDir, file)
			if _, statErr := os.Stat(candidate); statErr == nil {
				tpl, err = NewTemplate(candidate, funcs)
			} else if !errors.Is(statErr, fs.ErrNotExist) {
				return nil, fmt.Errorf("stat prompt override %q: %w", candidate, statErr)
			}
		}
		if tpl == nil && err == nil {
			tpl, err = NewTemplateFS(base, path.Join(baseDir, file), funcs)
		}
		if err != nil {
			return nil, err
		}
		s.templates[name] = tpl
	}
	return s, nil
}

// Render executes the named template.
func (s *Set) Render(name string, data any) (string, error) {
	tpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("prompt template %q not loaded", name)
	}
	return tpl.Render(data)
}

// Digests returns name → content digest for every template, in name order.
func (s *Set) Digests() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, name+"="+shortDigest(s.templates[name].Digest()))
	}
	return out
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

// Funcs are the helpers available to prompt templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"default": func(def, v string) string {
			if strings.TrimSpace(v) == "" {
				return def
			}
			return v
		},
		"bullets": func(items []string) string {
			var b strings.Builder
			for _, it := range items {
				b.WriteString("- ")
				b.WriteString(it)
				b.WriteByte('\n')
			}
			return strings.TrimRight(b.String(), "\n")
		},
	}
}
