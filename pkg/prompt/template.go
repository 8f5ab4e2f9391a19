package prompt

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

// Template is a single prompt file parsed with missingkey=error. Disk
// templates read through os.DirFS so both constructors share one loader.
type Template struct {
	name  string
	src   fs.FS
	file  string
	funcs template.FuncMap

	mu     sync.RWMutex
	parsed *template.Template
	sum    string
}

// NewTemplate parses the template file at p.
func NewTemplate(p string, funcs template.FuncMap) (*Template, error) {
	if p == "" {
		return nil, errors.New("prompt template path is empty")
	}
	return load(p, os.DirFS(filepath.Dir(p)), filepath.Base(p), funcs)
}

// NewTemplateFS parses name from fsys.
func NewTemplateFS(fsys fs.FS, name string, funcs template.FuncMap) (*Template, error) {
	switch {
	case fsys == nil:
		return nil, errors.New("prompt template fs is nil")
	case name == "":
		return nil, errors.New("prompt template path is empty")
	}
	return load(name, fsys, name, funcs)
}

func load(name string, src fs.FS, file string, funcs template.FuncMap) (*Template, error) {
	t := &Template{name: name, src: src, file: file, funcs: funcs}
	parsed, sum, err := t.parse()
	if err != nil {
		return nil, err
	}
	t.parsed, t.sum = parsed, sum
	return t, nil
}

// Name is the path the template came from.
func (t *Template) Name() string { return t.name }

// Render executes the template against data.
func (t *Template) Render(data any) (string, error) {
	t.mu.RLock()
	parsed := t.parsed
	t.mu.RUnlock()

	var sb strings.Builder
	if err := parsed.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute prompt template %q: %w", t.name, err)
	}
	return sb.String(), nil
}

// Reload rereads the source. The previous version stays active when the
// new one fails to parse.
func (t *Template) Reload() error {
	parsed, sum, err := t.parse()
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.parsed, t.sum = parsed, sum
	t.mu.Unlock()
	return nil
}

// Digest is the hex sha256 of the template source.
func (t *Template) Digest() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sum
}

func (t *Template) parse() (*template.Template, string, error) {
	raw, err := fs.ReadFile(t.src, t.file)
	if err != nil {
		return nil, "", fmt.Errorf("read prompt template %q: %w", t.name, err)
	}
	parsed := template.New(path.Base(t.file)).Option("missingkey=error")
	if t.funcs != nil {
		parsed.Funcs(t.funcs)
	}
	if _, err := parsed.Parse(string(raw)); err != nil {
		return nil, "", fmt.Errorf("parse prompt template %q: %w", t.name, err)
	}
	sum := sha256.Sum256(raw)
	return parsed, hex.EncodeToString(sum[:]), nil
}
