package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads .env files into the process environment. ENV_FILE
// names a single file; otherwise the working directory is tried first and
// then the repository root. Variables that are
// already set win unless DOTENV_OVERLOAD=1. NO_DOTENV=1 disables loading.
func LoadDotenvOnce() {
	dotenvOnce.Do(func() {
		for _, p := range dotenvCandidates() {
			loadDotenv(p)
		}
	})
}

func dotenvCandidates() []string {
	if os.Getenv("NO_DOTENV") == "1" {
		return nil
	}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return []string{envFile}
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if root, err := ProjectRoot(); err == nil {
		dirs = append(dirs, root)
	}

	var out []string
	for _, dir := range dirs {
		p := filepath.Join(dir, ".env")
		if exists(p) && (len(out) == 0 || out[len(out)-1] != p) {
			out = append(out, p)
		}
	}
	return out
}

func loadDotenv(path string) {
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		_ = godotenv.Overload(path)
		return
	}
	_ = godotenv.Load(path)
}
