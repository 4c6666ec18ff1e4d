package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	defer func() { log.Logger = zerolog.Nop() }()

	file := filepath.Join(t.TempDir(), "logs", "pathedit.log")
	closeFn, err := Setup(Options{Level: "debug", File: file})
	require.NoError(t, err)

	l := GetLogger("test")
	l.Info().Str("entry", "/usr/bin").Msg("hello")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_InvalidLevel(t *testing.T) {
	_, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestDefaultLogFile(t *testing.T) {
	assert.Equal(t, "pathedit.log", filepath.Base(DefaultLogFile()))
}
