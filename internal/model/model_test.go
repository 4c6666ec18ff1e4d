package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathEntry_ValidityIsNotCached(t *testing.T) {
	calls := 0
	ok := true
	e := NewPathEntry("/x", func(string) bool {
		calls++
		return ok
	})

	assert.True(t, e.IsValid())
	ok = false
	assert.False(t, e.IsValid())
	assert.Equal(t, 2, calls)
}

func TestPathEntry_NilValidator(t *testing.T) {
	assert.True(t, NewPathEntry("/x", nil).IsValid())
	assert.False(t, NewPathEntry("", nil).IsValid())
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file), "a file is not a directory")
	assert.False(t, DirExists(filepath.Join(dir, "missing")))
	assert.False(t, DirExists(""))
	assert.False(t, DirExists("   "))

	t.Setenv("PATHEDIT_TEST_DIR", dir)
	assert.True(t, DirExists("$PATHEDIT_TEST_DIR"))
	assert.True(t, DirExists("${PATHEDIT_TEST_DIR}"))
}

func TestKeepReference(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")
	valid := KeepReference("PATH", DirExists)

	assert.True(t, valid("$PATH"))
	assert.True(t, valid("${PATH}"))
	assert.True(t, valid(t.TempDir()))
	assert.False(t, valid("$MANPATH"))
	assert.False(t, valid("/nonexistent/pathedit"))
	assert.False(t, DirExists("$PATH"), "the expanded list is not a directory")
}

func TestExpandPath_Tilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "bin"), ExpandPath("~/bin"))
	assert.Equal(t, "/usr/~bin", ExpandPath("/usr/~bin"))
}

func TestAnnotate(t *testing.T) {
	valid := func(v string) bool { return v != "/missing" }
	entries := []*PathEntry{
		NewPathEntry("/usr/bin", valid),
		NewPathEntry("/missing", valid),
		NewPathEntry("", valid),
		NewPathEntry("/usr/bin", valid),
		NewPathEntry("/missing", valid),
	}

	st := Annotate(entries)
	require.Len(t, st, 5)

	assert.True(t, st[0].Valid)
	assert.False(t, st[0].IsDuplicate)
	assert.Equal(t, -1, st[0].DuplicateOf)
	assert.Equal(t, IconOK, st[0].Icon())

	assert.False(t, st[1].Valid)
	assert.Contains(t, st[1].Remediation, "does not exist")
	assert.Equal(t, IconMissing, st[1].Icon())

	assert.True(t, st[2].Empty)
	assert.Empty(t, st[2].Remediation)
	assert.Equal(t, IconEmpty, st[2].Icon())

	assert.True(t, st[3].IsDuplicate)
	assert.Equal(t, 0, st[3].DuplicateOf)
	assert.Contains(t, st[3].Remediation, "Duplicate of entry 1")
	assert.Equal(t, IconDuplicate, st[3].Icon())

	assert.True(t, st[4].IsDuplicate)
	assert.Equal(t, 1, st[4].DuplicateOf)
	assert.Equal(t, IconMissing, st[4].Icon(), "missing wins over duplicate")
}
