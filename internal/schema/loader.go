package schema

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Database is the merged, read-only registry of command schemas. Once
// built it is never mutated, so concurrent completion requests read it
// without locking.
type Database struct {
	byName map[string]*CommandSchema
}

// Lookup returns the schema registered for name.
func (db *Database) Lookup(name string) (*CommandSchema, bool) {
	s, ok := db.byName[name]
	return s, ok
}

// Names enumerates every registered command name.
func (db *Database) Names() []string {
	names := make([]string, 0, len(db.byName))
	for name := range db.byName {
		names = append(names, name)
	}
	return names
}

// DeclaredSubcommands implements the parser's SubcommandResolver: the
// subcommand names under command at path, plus whether command is known.
func (db *Database) DeclaredSubcommands(command string, path []string) ([]string, bool) {
	s, ok := db.byName[command]
	if !ok {
		return nil, false
	}
	return s.SubcommandNames(path), true
}

// register adds a schema unless the name is already taken; first
// registrant for a name wins.
func (db *Database) register(s *CommandSchema) bool {
	if _, exists := db.byName[s.Command]; exists {
		return false
	}
	db.byName[s.Command] = s
	return true
}

// Loader builds a Database from the bundled definitions and the user's
// schema directories, in lookup order.
type Loader struct {
	logger *zap.Logger

	// extraDirs are probed after the bundled definitions, in order.
	extraDirs []string
}

// NewLoader creates a loader probing the standard user directories:
// $XDG_CONFIG_HOME/tabby/completions, ~/.config/tabby/completions, then
// ./completions relative to the working directory.
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger, extraDirs: userSchemaDirs()}
}

// NewLoaderWithDirs creates a loader probing only the given directories
// after the bundled definitions. Used by tests and by callers that manage
// their own configuration layout.
func NewLoaderWithDirs(logger *zap.Logger, dirs ...string) *Loader {
	return &Loader{logger: logger, extraDirs: dirs}
}

func userSchemaDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "tabby", "completions"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "tabby", "completions"))
	}
	dirs = append(dirs, "completions")
	return dirs
}

// Load parses every definition source and merges them name-keyed. A
// malformed or invalid file is logged and skipped; it never aborts the
// load.
func (l *Loader) Load() *Database {
	db := &Database{byName: make(map[string]*CommandSchema)}

	l.loadFS(db, Bundled, "bundled")
	for _, dir := range l.extraDirs {
		l.loadDir(db, dir)
	}

	l.logger.Debug("completion schemas loaded", zap.Int("commands", len(db.byName)))
	return db
}

func (l *Loader) loadFS(db *Database, fsys fs.FS, origin string) {
	_ = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			l.logger.Warn("failed to read schema file",
				zap.String("origin", origin), zap.String("path", path), zap.Error(err))
			return nil
		}
		l.registerDocument(db, origin, path, data)
		return nil
	})
}

func (l *Loader) loadDir(db *Database, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Missing user directories are the common case.
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isSchemaFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warn("failed to read schema file", zap.String("path", path), zap.Error(err))
			continue
		}
		l.registerDocument(db, dir, path, data)
	}
}

func (l *Loader) registerDocument(db *Database, origin, path string, data []byte) {
	s, err := parseDocument(data)
	if err != nil {
		l.logger.Warn("skipping malformed schema file",
			zap.String("origin", origin), zap.String("path", path), zap.Error(err))
		return
	}
	if err := s.Validate(); err != nil {
		l.logger.Warn("skipping invalid schema file",
			zap.String("origin", origin), zap.String("path", path), zap.Error(err))
		return
	}
	if !db.register(s) {
		l.logger.Debug("schema already registered, keeping first",
			zap.String("command", s.Command), zap.String("path", path))
	}
}

func isSchemaFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") ||
		strings.HasSuffix(path, ".yml") ||
		strings.HasSuffix(path, ".json")
}

var (
	defaultOnce sync.Once
	defaultDB   *Database
)

// Default returns the process-wide database, built once on first use from
// the standard lookup order. Callers wanting a custom layout construct
// their own Loader and pass the resulting Database by handle.
func Default(logger *zap.Logger) *Database {
	defaultOnce.Do(func() {
		defaultDB = NewLoader(logger).Load()
	})
	return defaultDB
}
