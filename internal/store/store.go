package store

import (
	"os"
	"path/filepath"
)

const dirName = ".gtd"

// Store is the persistence adapter: one JSON blob for the whole State,
// stored under a single key in a local SQLite file inside Dir.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing .gtd directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store directory: GTD_DIR if set, an existing .gtd
// found by walking up from the working directory, else .gtd under cwd.
func DefaultDir() (string, error) {
	if env := os.Getenv("GTD_DIR"); env != "" {
		return env, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, "state.sqlite")
}
