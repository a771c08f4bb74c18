package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSignalsByName(t *testing.T) {
	sigs := Signals("TE")
	require.Len(t, sigs, 1)
	assert.Equal(t, "TERM", sigs[0].Name)
	assert.Equal(t, 15, sigs[0].Number)
}

func TestSignalsWithDashAndSigPrefix(t *testing.T) {
	assert.Equal(t, Signals("TERM"), Signals("-TERM"))
	assert.Equal(t, Signals("TERM"), Signals("SIGTERM"))
	assert.Equal(t, Signals("us"), Signals("-SIGUS"))
}

func TestSignalsNumeric(t *testing.T) {
	sigs := Signals("9")
	require.Len(t, sigs, 1)
	assert.Equal(t, "KILL", sigs[0].Name)
}

func TestSignalsEmptyPrefixReturnsAll(t *testing.T) {
	assert.Len(t, Signals(""), len(signalTable))
}

func writePasswd(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "passwd")
	content := `root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
alice:x:1000:1000:Alice:/home/alice:/bin/zsh
bob:x:1001:1001:Bob:/home/bob:/bin/bash
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUsersExcludesSystemAccounts(t *testing.T) {
	e := NewEnumerator(zap.NewNop())
	e.passwdPath = writePasswd(t)

	users, err := e.Users(false)
	require.NoError(t, err)

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	// root is always present; daemon (uid 1) is filtered.
	assert.Equal(t, []string{"root", "alice", "bob"}, names)
}

func TestUsersIncludeSystemAccounts(t *testing.T) {
	e := NewEnumerator(zap.NewNop())
	e.passwdPath = writePasswd(t)

	users, err := e.Users(true)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestGroups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "group")
	require.NoError(t, os.WriteFile(path, []byte("wheel:x:10:alice\nusers:x:100:\n"), 0o644))

	e := NewEnumerator(zap.NewNop())
	e.groupPath = path

	groups, err := e.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, Group{Name: "wheel", GID: 10}, groups[0])
}

func TestUsersCached(t *testing.T) {
	e := NewEnumerator(zap.NewNop())
	e.passwdPath = writePasswd(t)

	_, err := e.Users(false)
	require.NoError(t, err)

	// Remove the backing file; the cached listing must still answer.
	require.NoError(t, os.Remove(e.passwdPath))
	users, err := e.Users(false)
	require.NoError(t, err)
	assert.NotEmpty(t, users)
}

func TestExecutablesFirstPathHitWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	write := func(dir, name string, mode os.FileMode) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), mode))
	}
	write(first, "tool", 0o755)
	write(second, "tool", 0o755)
	write(second, "toolbox", 0o755)
	write(second, "tooldata", 0o644) // not executable

	t.Setenv("PATH", first+string(os.PathListSeparator)+second)

	e := NewEnumerator(zap.NewNop())
	names := e.Executables("tool")
	assert.Equal(t, []string{"tool", "toolbox"}, names)
}

func TestExecutablesListingCached(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prog"), []byte("x"), 0o755))
	t.Setenv("PATH", dir)

	e := NewEnumerator(zap.NewNop())

	calls := 0
	orig := osReadDir
	osReadDir = func(name string) ([]os.DirEntry, error) {
		calls++
		return orig(name)
	}
	defer func() { osReadDir = orig }()

	e.Executables("p")
	e.Executables("pr")
	assert.Equal(t, 1, calls, "second prefix against the same directory must reuse the cached listing")
}
