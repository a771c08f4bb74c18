package system

import (
	"os"
	"path/filepath"
	"strings"
)

// Executables scans every directory on the search path for executable
// entries matching prefix, de-duplicated by name with the first PATH hit
// winning. Directory listings are cached keyed by the directory itself so
// successive prefixes share one read.
func (e *Enumerator) Executables(prefix string) []string {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		names, err := e.listExecutables(dir)
		if err != nil {
			continue
		}
		for _, name := range names {
			if !strings.HasPrefix(name, prefix) || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// listExecutables returns the executable entries of one directory,
// through the TTL cache.
func (e *Enumerator) listExecutables(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return e.pathDirs.GetOrCompute(abs, func() ([]string, error) {
		entries, err := osReadDir(abs)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.Mode()&0o111 != 0 {
				names = append(names, entry.Name())
			}
		}
		return names, nil
	})
}
