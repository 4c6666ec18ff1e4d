// Package logging configures the global zerolog logger. The terminal UI owns
// stdout/stderr, so by default log lines only go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	// Silent until Setup is called, so tests and library use stay quiet.
	log.Logger = zerolog.Nop()
}

// Options control where and how much is logged.
type Options struct {
	Level   string // zerolog level name; empty means "info"
	File    string // Log file; empty means DefaultLogFile()
	Console bool   // Also write to stderr
}

// Setup configures the global logger. It returns a close function for the
// log file.
func Setup(opts Options) (func() error, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		})
	}

	logFile := opts.File
	if logFile == "" {
		logFile = DefaultLogFile()
	}
	closeFn := func() error { return nil }
	fh, err := setupLogFile(logFile)
	if err == nil {
		writers = append(writers, fh)
		closeFn = fh.Close
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	// If we couldn't create the log file, log the error now with the new logger
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file")
	}
	log.Debug().Str("level", level.String()).Str("logFile", logFile).Msg("Logger initialized")
	return closeFn, nil
}

// GetLogger returns a contextualized logger with the given name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// DefaultLogFile returns $XDG_STATE_HOME/pathedit/pathedit.log.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, "pathedit", "pathedit.log")
}

func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
