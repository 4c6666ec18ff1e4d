package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathedit/internal/config"
)

func TestOpenEditor_FileStore(t *testing.T) {
	dir := t.TempDir()
	snippet := filepath.Join(dir, "path.sh")
	require.NoError(t, os.WriteFile(snippet, []byte("export PATH='"+dir+":/nonexistent/pathedit'\n"), 0o644))

	cfg := &config.Config{Variable: "PATH", Delimiter: ":", Store: "file", File: snippet, Shell: "bash"}
	ed, tgt, err := openEditor(cfg, false)
	require.NoError(t, err)
	assert.Equal(t, "file:PATH", tgt.name)
	assert.Empty(t, tgt.notice)
	assert.Equal(t, []string{dir, "/nonexistent/pathedit"}, ed.Values())

	removed, err := ed.Purge()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	data, err := os.ReadFile(snippet)
	require.NoError(t, err)
	assert.Equal(t, "export PATH='"+dir+":'\n", string(data))
}

func TestOpenEditor_DryRunNeverWrites(t *testing.T) {
	snippet := filepath.Join(t.TempDir(), "path.sh")
	original := "export PATH='/nonexistent/a:/nonexistent/b'\n"
	require.NoError(t, os.WriteFile(snippet, []byte(original), 0o644))

	cfg := &config.Config{Variable: "PATH", Delimiter: ":", Store: "file", File: snippet, Shell: "zsh"}
	ed, tgt, err := openEditor(cfg, true)
	require.NoError(t, err)
	assert.Contains(t, tgt.name, "dry run")
	assert.Contains(t, tgt.notice, "not persisted")

	_, err = ed.Purge()
	require.NoError(t, err)
	assert.Empty(t, ed.Values())

	data, err := os.ReadFile(snippet)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestOpenEditor_UnknownShell(t *testing.T) {
	cfg := &config.Config{Variable: "PATH", Delimiter: ":", Store: "memory", Shell: "tcsh"}
	_, _, err := openEditor(cfg, false)
	assert.Error(t, err)
}

func TestOpenEditor_EnvStoreWarnsNotPersisted(t *testing.T) {
	t.Setenv("PATHEDIT_TEST_PATH", "/nonexistent/pathedit:")
	cfg := &config.Config{Variable: "PATHEDIT_TEST_PATH", Delimiter: ":", Store: "env"}
	ed, tgt, err := openEditor(cfg, false)
	require.NoError(t, err)
	assert.Contains(t, tgt.notice, "not persisted")

	removed, err := ed.Purge()
	require.NoError(t, err)
	report := purgeReport(removed, ed.Len(), tgt)
	assert.Contains(t, report, "Removed 1 invalid entries from env:PATHEDIT_TEST_PATH")
	assert.Contains(t, report, "Note: changes are not persisted")
}

func TestOpenEditor_FileStoreKeepsSelfReference(t *testing.T) {
	snippet := filepath.Join(t.TempDir(), "path.sh")
	require.NoError(t, os.WriteFile(snippet, []byte(`export PATH="/nonexistent/pathedit:$PATH"`+"\n"), 0o644))

	cfg := &config.Config{Variable: "PATH", Delimiter: ":", Store: "file", File: snippet, Shell: "bash"}
	ed, _, err := openEditor(cfg, false)
	require.NoError(t, err)

	removed, err := ed.Purge()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	data, err := os.ReadFile(snippet)
	require.NoError(t, err)
	assert.Equal(t, `export PATH="$PATH:"`+"\n", string(data))
}
