package confkit

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// rootMarkers identify the repository root.
var rootMarkers = []string{"go.mod", ".git"}

// ascendLimit bounds how far ancestors are searched.
const ascendLimit = 8

// ProjectRoot is the nearest ancestor of this package's source holding a
// root marker, or the working directory when the source tree is absent
// (an installed binary).
func ProjectRoot() (string, error) {
	if _, self, _, ok := runtime.Caller(0); ok {
		for _, dir := range ancestors(filepath.Dir(self)) {
			if isRoot(dir) {
				return dir, nil
			}
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ".", fmt.Errorf("getwd: %w", err)
	}
	return wd, nil
}

// ProjectPath anchors rel at ProjectRoot.
func ProjectPath(rel string) (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// ancestors lists dir and its parents, nearest first, up to ascendLimit
// entries or the filesystem root.
func ancestors(dir string) []string {
	out := make([]string, 0, ascendLimit)
	for len(out) < ascendLimit {
		out = append(out, dir)
		up := filepath.Dir(dir)
		if up == dir {
			break
		}
		dir = up
	}
	return out
}

func isRoot(dir string) bool {
	for _, m := range rootMarkers {
		if exists(filepath.Join(dir, m)) {
			return true
		}
	}
	return false
}

func exists(p string) bool {
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}
