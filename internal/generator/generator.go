// Package generator produces static completion candidates from the parsed
// command line and the schema database: command names, subcommands,
// options and typed arguments.
package generator

import (
	"os"
	"strings"

	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/internal/schema"
	"github.com/robottwo/tabby/internal/system"
	"github.com/robottwo/tabby/pkg/candidate"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// commonCommands is the fixed fallback offered at command position for
// names the schema database does not know.
var commonCommands = []string{
	"ls", "cd", "cat", "grep", "find", "ps", "kill", "echo", "mkdir",
	"rmdir", "rm", "cp", "mv", "touch", "chmod", "chown", "tar", "curl",
	"wget", "ssh", "scp", "git", "vim", "top", "htop", "df", "du", "head",
	"tail", "less", "man", "make", "docker", "python3", "go", "cargo",
	"npm", "sudo", "which", "env", "export",
}

// Generator dispatches purely on the completion context.
type Generator struct {
	db     *schema.Database
	sys    *system.Enumerator
	files  *FileCompleter
	logger *zap.Logger
}

func New(db *schema.Database, sys *system.Enumerator, files *FileCompleter, logger *zap.Logger) *Generator {
	return &Generator{db: db, sys: sys, files: files, logger: logger}
}

// Generate returns the static candidates for parsed, resolving file
// arguments relative to workDir. A generator failure degrades to zero
// candidates, never an error for the caller.
func (g *Generator) Generate(parsed parser.ParsedCommandLine, workDir string) []candidate.Candidate {
	switch parsed.Context.Kind {
	case parser.KindCommand:
		return g.commands(parsed.CurrentToken)
	case parser.KindSubcommand:
		return g.subcommands(parsed)
	case parser.KindShortOption, parser.KindLongOption:
		return g.options(parsed)
	case parser.KindOptionValue:
		return g.optionValue(parsed, workDir)
	case parser.KindArgument:
		return g.argument(parsed, workDir)
	default:
		return nil
	}
}

func (g *Generator) commands(prefix string) []candidate.Candidate {
	var out []candidate.Candidate

	for _, name := range g.db.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		c := candidate.New(name, candidate.CategoryCommand)
		if s, ok := g.db.Lookup(name); ok {
			c = c.WithDescription(s.Description)
		}
		out = append(out, c)
	}
	for _, name := range commonCommands {
		if strings.HasPrefix(name, prefix) {
			out = append(out, candidate.New(name, candidate.CategoryCommand))
		}
	}
	for _, name := range g.sys.Executables(prefix) {
		out = append(out, candidate.New(name, candidate.CategoryExecutable))
	}
	return out
}

func (g *Generator) subcommands(parsed parser.ParsedCommandLine) []candidate.Candidate {
	s, ok := g.db.Lookup(parsed.Command)
	if !ok {
		return nil
	}

	level, ok := s.At(parsed.SubcommandPath)
	if !ok {
		// Unresolvable path: offer the command's top-level subcommands.
		level, _ = s.At(nil)
	}

	// Subcommands match on subsequence, not strict prefix, so "co" still
	// surfaces "checkout"; ranking later promotes prefix matches.
	var out []candidate.Candidate
	for _, sub := range level.Subcommands {
		if matchesSubsequence(sub.Name, parsed.CurrentToken) {
			out = append(out, candidate.New(sub.Name, candidate.CategorySubcommand).
				WithDescription(sub.Description))
		}
	}
	if len(out) > 0 {
		return out
	}

	// Nothing matched (or no subcommands exist): fall back to the first
	// unfilled positional argument plus the global options.
	if arg := argumentAt(level, len(parsed.SpecifiedArguments)); arg != nil {
		out = append(out, g.typed(arg.ArgType, parsed.CurrentToken, "")...)
	}
	out = append(out, g.optionCandidates(s.GlobalOptions, parsed)...)
	return out
}

func (g *Generator) options(parsed parser.ParsedCommandLine) []candidate.Candidate {
	s, ok := g.db.Lookup(parsed.Command)
	if !ok {
		return nil
	}

	opts := append([]schema.Option{}, s.GlobalOptions...)
	if level, ok := s.At(parsed.SubcommandPath); ok && len(parsed.SubcommandPath) > 0 {
		opts = append(opts, level.Options...)
	}
	return g.optionCandidates(opts, parsed)
}

// optionCandidates expands every form, prefix-filters against the current
// token and drops forms already typed on the line.
func (g *Generator) optionCandidates(opts []schema.Option, parsed parser.ParsedCommandLine) []candidate.Candidate {
	var out []candidate.Candidate
	for _, opt := range opts {
		for _, form := range opt.Forms() {
			if !strings.HasPrefix(form, parsed.CurrentToken) {
				continue
			}
			if lo.Contains(parsed.SpecifiedOptions, form) {
				continue
			}
			out = append(out, candidate.New(form, candidate.CategoryOption).
				WithDescription(opt.Description))
		}
	}
	return out
}

// optionValueKinds maps the fixed value-taking options to the argument
// kind their values complete as. Plain strings yield nothing and the
// façade falls back to file completion.
var optionValueKinds = map[string]schema.ArgKind{
	"-m":         schema.ArgString,
	"--message":  schema.ArgString,
	"--target":   schema.ArgString,
	"--features": schema.ArgString,
	"--git":      schema.ArgString,
	"--path":     schema.ArgDirectory,
	"--name":     schema.ArgString,
}

func (g *Generator) optionValue(parsed parser.ParsedCommandLine, workDir string) []candidate.Candidate {
	kind, ok := optionValueKinds[parsed.Context.OptionName]
	if !ok {
		return nil
	}
	return g.typed(&schema.ArgumentType{Kind: kind}, parsed.CurrentToken, workDir)
}

func (g *Generator) argument(parsed parser.ParsedCommandLine, workDir string) []candidate.Candidate {
	if parsed.Context.Redirect {
		// Redirect targets always complete as files.
		return g.typed(&schema.ArgumentType{Kind: schema.ArgFile}, parsed.CurrentToken, workDir)
	}

	s, ok := g.db.Lookup(parsed.Command)
	if !ok {
		return nil
	}
	level, ok := s.At(parsed.SubcommandPath)
	if !ok {
		return nil
	}
	arg := argumentAt(level, parsed.Context.ArgIndex)
	if arg == nil {
		return nil
	}
	return g.typed(arg.ArgType, parsed.CurrentToken, workDir)
}

// argumentAt returns the declared argument at index; past the last
// declared argument the final one repeats (variadic trailing argument).
func argumentAt(level schema.Level, index int) *schema.Argument {
	if len(level.Arguments) == 0 || index < 0 {
		return nil
	}
	if index >= len(level.Arguments) {
		index = len(level.Arguments) - 1
	}
	return &level.Arguments[index]
}

// typed dispatches on the argument type.
func (g *Generator) typed(t *schema.ArgumentType, current, workDir string) []candidate.Candidate {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case schema.ArgFile:
		return g.files.Complete(current, workDir, Listing{Extensions: t.Extensions})
	case schema.ArgDirectory:
		return g.files.Complete(current, workDir, Listing{DirectoriesOnly: true})
	case schema.ArgChoice:
		var out []candidate.Candidate
		for _, v := range t.Values {
			if strings.HasPrefix(v, current) {
				out = append(out, candidate.New(v, candidate.CategoryChoice))
			}
		}
		return out
	case schema.ArgCommand, schema.ArgCommandWithArgs:
		var out []candidate.Candidate
		for _, name := range g.sys.Executables(current) {
			out = append(out, candidate.New(name, candidate.CategoryExecutable))
		}
		return out
	case schema.ArgEnvironment:
		return g.environment(current)
	case schema.ArgUser:
		return g.userCandidates(current)
	case schema.ArgGroup:
		return g.groupCandidates(current)
	case schema.ArgSignal:
		return g.signalCandidates(current)
	case schema.ArgInterface:
		return g.interfaceCandidates(current)
	default:
		// ArgString: nothing here, the façade falls back to files.
		return nil
	}
}

func matchesSubsequence(name, query string) bool {
	if query == "" {
		return true
	}
	return len(fuzzy.Find(query, []string{name})) > 0
}

func (g *Generator) environment(prefix string) []candidate.Candidate {
	var out []candidate.Candidate
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, prefix) {
			out = append(out, candidate.New(name, candidate.CategoryEnvironment))
		}
	}
	return out
}
