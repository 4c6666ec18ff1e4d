// Package store reads and writes the raw delimited value of the edited
// variable. Every store is synchronous and meant for one writer at a time.
package store

import (
	"errors"
	"fmt"
)

// Store is the persistence side of the edited variable.
type Store interface {
	Read() (string, error)
	Write(value string) error
}

// ErrUnknownStore is returned by New for an unrecognised kind.
var ErrUnknownStore = errors.New("unknown store")

// Error wraps a failed store operation.
type Error struct {
	Op    string // "read" or "write"
	Store string // Store description, e.g. "env:PATH"
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Store, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options selects and configures a store.
type Options struct {
	Kind  string // "env", "file" or "memory"
	Name  string // Variable name, e.g. PATH
	File  string // Snippet path for the file store
	Shell Shell  // Syntax for the file store
}

// New builds the store described by opts.
func New(opts Options) (Store, error) {
	switch opts.Kind {
	case "", "env":
		return &EnvStore{Name: opts.Name}, nil
	case "file":
		if opts.File == "" {
			return nil, fmt.Errorf("file store needs a file path")
		}
		sh := opts.Shell
		if sh == nil {
			sh = &BashShell{}
		}
		return &FileStore{Path: opts.File, Name: opts.Name, Shell: sh}, nil
	case "memory":
		return &MemoryStore{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStore, opts.Kind)
}

// Notice returns a warning for stores whose writes do not outlive the
// process, or "" for stores that persist.
func Notice(s Store) string {
	switch s.(type) {
	case *EnvStore:
		return "changes are not persisted (env store: only this process sees them)"
	case *MemoryStore:
		return "changes are not persisted (memory store)"
	}
	return ""
}
