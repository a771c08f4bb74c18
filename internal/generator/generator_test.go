package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/internal/schema"
	"github.com/robottwo/tabby/internal/system"
	"github.com/robottwo/tabby/pkg/candidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator(t *testing.T) (*Generator, *parser.Parser) {
	t.Helper()
	db := schema.NewLoaderWithDirs(zap.NewNop()).Load()
	g := New(db, system.NewEnumerator(zap.NewNop()), NewFileCompleter(), zap.NewNop())
	return g, parser.New(db)
}

func generate(t *testing.T, g *Generator, p *parser.Parser, input, workDir string) []candidate.Candidate {
	t.Helper()
	parsed := p.Parse(input, len(input))
	return g.Generate(parsed, workDir)
}

func texts(cands []candidate.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Text)
	}
	return out
}

func TestGenerateCommandNames(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "gi", ""))
	assert.Contains(t, got, "git")
	assert.NotContains(t, got, "cargo")
}

func TestGenerateSubcommands(t *testing.T) {
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "git c", ""))
	assert.Contains(t, got, "commit")
	assert.Contains(t, got, "checkout")
	assert.Contains(t, got, "clone")
	assert.NotContains(t, got, "push")
}

func TestGenerateNestedSubcommands(t *testing.T) {
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "git remote ", ""))
	assert.Contains(t, got, "add")
	assert.Contains(t, got, "remove")
}

func TestGenerateOptions(t *testing.T) {
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "git commit -", ""))
	assert.Contains(t, got, "-m")
	assert.Contains(t, got, "--message")
	assert.Contains(t, got, "--amend")
}

func TestGenerateOptionsLongPrefix(t *testing.T) {
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "git commit --a", ""))
	assert.Contains(t, got, "--all")
	assert.Contains(t, got, "--amend")
	assert.NotContains(t, got, "--message")
}

func TestGenerateOptionsDropSpecified(t *testing.T) {
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "git commit --amend -", ""))
	assert.NotContains(t, got, "--amend")
	assert.Contains(t, got, "-m")
}

func TestGenerateChoiceArgument(t *testing.T) {
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "kubectl get p", ""))
	assert.Contains(t, got, "pods")
	assert.NotContains(t, got, "services")
}

func TestGenerateEnvironmentArgument(t *testing.T) {
	t.Setenv("TABBY_TEST_VARIABLE", "1")
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "unset TABBY_TE", ""))
	assert.Equal(t, []string{"TABBY_TEST_VARIABLE"}, got)
}

func TestGenerateOptionValueMessage(t *testing.T) {
	g, p := newTestGenerator(t)

	// Free-form string values produce no static candidates.
	got := generate(t, g, p, "git commit -m ", "")
	assert.Empty(t, got)
}

func TestGenerateRedirectTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "output.log"), nil, 0o644))
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "echo hi > out", dir))
	assert.Equal(t, []string{"output.log"}, got)
}

func TestGenerateFileArgumentExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cmd"), 0o755))
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "go run ", dir))
	assert.Contains(t, got, "main.go")
	assert.Contains(t, got, "cmd/")
	assert.NotContains(t, got, "notes.txt")
}

func TestGenerateDirectoryArgument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "cd ", dir))
	assert.Equal(t, []string{"src/"}, got)
}

func TestGenerateVariadicTrailingArgument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644))
	g, p := newTestGenerator(t)

	// "git add" declares one file argument; later positions repeat it.
	got := texts(generate(t, g, p, "git add a.txt b", dir))
	assert.Equal(t, []string{"b.txt"}, got)
}

func TestGenerateCommandArgument(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "mytool")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", dir)
	g, p := newTestGenerator(t)

	got := texts(generate(t, g, p, "which my", ""))
	assert.Equal(t, []string{"mytool"}, got)
}

func TestGenerateUnknownCommandNoArguments(t *testing.T) {
	g, p := newTestGenerator(t)

	got := generate(t, g, p, "frobnicate somearg", t.TempDir())
	assert.Empty(t, got)
}
