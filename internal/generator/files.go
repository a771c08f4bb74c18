package generator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/robottwo/tabby/internal/cache"
	"github.com/robottwo/tabby/pkg/candidate"
)

// Overridable for testing.
var osReadDir = os.ReadDir

// Listing narrows a directory scan.
type Listing struct {
	// DirectoriesOnly drops regular files from the result.
	DirectoriesOnly bool
	// Extensions, when non-empty, keeps only files with one of these
	// suffixes. Directories always pass so the user can descend.
	Extensions []string
}

type dirEntry struct {
	name  string
	isDir bool
}

// FileCompleter scans directories for path completion. Listings are
// cached keyed by the resolved absolute directory, not the raw partial
// input, so many prefixes against one directory share an entry.
type FileCompleter struct {
	listings *cache.TTL[[]dirEntry]
}

func NewFileCompleter() *FileCompleter {
	return &FileCompleter{listings: cache.NewTTL[[]dirEntry](cache.PathListingTTL)}
}

// Complete splits token into a directory part and a filename prefix and
// returns the matching entries. A trailing separator means "list this
// directory entirely". Candidate text preserves the directory part
// exactly as typed; directories gain a trailing separator.
func (f *FileCompleter) Complete(token, workDir string, opts Listing) []candidate.Candidate {
	typedDir, prefix := splitToken(token)

	resolved := resolveDir(typedDir, workDir)
	entries, err := f.list(resolved)
	if err != nil {
		return nil
	}

	var out []candidate.Candidate
	for _, entry := range entries {
		if !strings.HasPrefix(entry.name, prefix) {
			continue
		}
		// Hidden entries only when explicitly asked for.
		if strings.HasPrefix(entry.name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if opts.DirectoriesOnly && !entry.isDir {
			continue
		}
		if !entry.isDir && !matchesExtensions(entry.name, opts.Extensions) {
			continue
		}

		text := typedDir + entry.name
		cat := candidate.CategoryFile
		if entry.isDir {
			text += string(os.PathSeparator)
			cat = candidate.CategoryDirectory
		}
		out = append(out, candidate.New(text, cat))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out
}

// BestMatch returns the single first match for a path prefix, or "" when
// nothing matches. This is the legacy non-interactive entry point.
func (f *FileCompleter) BestMatch(token, workDir string) string {
	matches := f.Complete(token, workDir, Listing{})
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Text
}

func (f *FileCompleter) list(dir string) ([]dirEntry, error) {
	return f.listings.GetOrCompute(dir, func() ([]dirEntry, error) {
		raw, err := osReadDir(dir)
		if err != nil {
			return nil, err
		}
		entries := make([]dirEntry, 0, len(raw))
		for _, e := range raw {
			entries = append(entries, dirEntry{name: e.Name(), isDir: e.IsDir()})
		}
		return entries, nil
	})
}

// splitToken separates the typed directory part (kept verbatim in the
// completion text) from the filename prefix being matched.
func splitToken(token string) (typedDir, prefix string) {
	if token == "" {
		return "", ""
	}
	if strings.HasSuffix(token, "/") {
		return token, ""
	}
	idx := strings.LastIndex(token, "/")
	if idx < 0 {
		return "", token
	}
	return token[:idx+1], token[idx+1:]
}

// resolveDir turns the typed directory part into an absolute directory to
// scan: ~ expands to the home directory, relative paths resolve against
// the working directory.
func resolveDir(typedDir, workDir string) string {
	switch {
	case typedDir == "":
		return workDir
	case typedDir == "~/" || strings.HasPrefix(typedDir, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return workDir
		}
		return filepath.Join(home, strings.TrimPrefix(typedDir, "~/"))
	case filepath.IsAbs(typedDir):
		return filepath.Clean(typedDir)
	default:
		return filepath.Join(workDir, typedDir)
	}
}

func matchesExtensions(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
