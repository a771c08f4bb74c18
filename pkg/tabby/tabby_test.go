package tabby

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/robottwo/tabby/internal/schema"
	"github.com/robottwo/tabby/pkg/candidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	db := schema.NewLoaderWithDirs(zap.NewNop()).Load()
	return New(db, opts...)
}

func complete(t *testing.T, e *Engine, input, dir string) []candidate.Candidate {
	t.Helper()
	return e.Complete(context.Background(), Request{Input: input, Cursor: len(input), Dir: dir})
}

func texts(cands []candidate.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Text)
	}
	return out
}

func TestCompleteCommitOptions(t *testing.T) {
	e := newTestEngine(t)

	got := texts(complete(t, e, "git commit -", ""))
	assert.Contains(t, got, "-m")
	assert.Contains(t, got, "--message")
}

func TestCompleteGitSubcommands(t *testing.T) {
	e := newTestEngine(t)

	got := texts(complete(t, e, "git c", ""))
	assert.Contains(t, got, "commit")
	assert.Contains(t, got, "checkout")
}

func TestCompleteSmartOrdering(t *testing.T) {
	e := newTestEngine(t)

	got := texts(complete(t, e, "git co", ""))
	require.NotEmpty(t, got)
	// Prefix matches come before fuzzy subsequence matches.
	assert.Equal(t, "commit", got[0])
	assert.Contains(t, got, "checkout")
}

func TestCompleteFileFallbackForUnknownCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	e := newTestEngine(t)

	got := texts(complete(t, e, "vim not", dir))
	assert.Equal(t, []string{"notes.txt"}, got)
}

func TestCompleteQuotesWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my notes.txt"), nil, 0o644))
	e := newTestEngine(t)

	got := texts(complete(t, e, "vim my", dir))
	require.Len(t, got, 1)
	assert.Equal(t, "'my notes.txt'", got[0])
}

func TestCompleteRespectsLimit(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	e := newTestEngine(t)

	got := e.Complete(context.Background(), Request{
		Input: "cat ", Cursor: 4, Dir: dir, Limit: 2,
	})
	assert.Len(t, got, 2)
}

func TestCompleteEmptyInput(t *testing.T) {
	e := newTestEngine(t)

	got := complete(t, e, "", "")
	assert.NotNil(t, got)
}

type fakeHistory struct {
	commands []string
	err      error
}

func (f *fakeHistory) RecentCommands(prefix string, limit int) ([]string, error) {
	return f.commands, f.err
}

func TestCompleteIncludesHistory(t *testing.T) {
	hist := &fakeHistory{commands: []string{"git status", "git push origin main"}}
	e := newTestEngine(t, WithHistory(hist))

	got := complete(t, e, "gi", "")
	byText := map[string]candidate.Candidate{}
	for _, c := range got {
		byText[c.Text] = c
	}

	require.Contains(t, byText, "git status")
	assert.Equal(t, candidate.CategoryHistory, byText["git status"].Category)
	// Whole history lines are never shell-quoted.
	assert.Contains(t, byText, "git push origin main")
}

func TestCompleteHistoryFailureDegrades(t *testing.T) {
	hist := &fakeHistory{err: errors.New("database locked")}
	e := newTestEngine(t, WithHistory(hist))

	got := texts(complete(t, e, "gi", ""))
	assert.Contains(t, got, "git")
}

func TestFilePrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.pdf"), nil, 0o644))
	e := newTestEngine(t)

	assert.Equal(t, "report.pdf", e.FilePrefix("rep", dir))
	assert.Equal(t, "", e.FilePrefix("zzz", dir))
}
