// Package history keeps a linear undo/redo history of whole-variable
// snapshots and writes every change through to a store.
package history

import (
	"fmt"

	"github.com/rs/zerolog"

	"pathedit/internal/logging"
	"pathedit/internal/store"
)

// Manager holds the current value and the undo/redo stacks.
// It is not safe for concurrent use.
type Manager struct {
	store   store.Store
	current string
	undo    []string
	redo    []string
	limit   int // Max undo depth; 0 means unlimited
	log     zerolog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the number of undo steps kept; the oldest are dropped.
func WithLimit(n int) Option {
	return func(m *Manager) {
		m.limit = n
	}
}

// New creates a Manager whose current value is read from s.
func New(s store.Store, opts ...Option) (*Manager, error) {
	current, err := s.Read()
	if err != nil {
		return nil, fmt.Errorf("reading initial value: %w", err)
	}
	m := &Manager{
		store:   s,
		current: current,
		log:     logging.GetLogger("history"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Current returns the last committed or restored value.
func (m *Manager) Current() string {
	return m.current
}

// CanUndo reports whether Undo would restore a snapshot.
func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0
}

// CanRedo reports whether Redo would restore a snapshot.
func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (undo, redo int) {
	return len(m.undo), len(m.redo)
}

// Commit records value as the new current snapshot, discards the redo
// branch and persists value. History is updated even if the write fails.
func (m *Manager) Commit(value string) error {
	m.undo = append(m.undo, m.current)
	if m.limit > 0 && len(m.undo) > m.limit {
		m.undo = m.undo[len(m.undo)-m.limit:]
	}
	m.current = value
	m.redo = m.redo[:0]

	m.log.Debug().Int("undo", len(m.undo)).Msg("commit")
	return m.persist()
}

// Undo restores the previous snapshot. ok is false when there is nothing
// to undo.
func (m *Manager) Undo() (value string, ok bool, err error) {
	if len(m.undo) == 0 {
		return "", false, nil
	}
	m.redo = append(m.redo, m.current)
	m.current, m.undo = pop(m.undo)

	m.log.Debug().Int("undo", len(m.undo)).Int("redo", len(m.redo)).Msg("undo")
	return m.current, true, m.persist()
}

// Redo re-applies the snapshot most recently undone. ok is false when there
// is nothing to redo.
func (m *Manager) Redo() (value string, ok bool, err error) {
	if len(m.redo) == 0 {
		return "", false, nil
	}
	m.undo = append(m.undo, m.current)
	m.current, m.redo = pop(m.redo)

	m.log.Debug().Int("undo", len(m.undo)).Int("redo", len(m.redo)).Msg("redo")
	return m.current, true, m.persist()
}

func (m *Manager) persist() error {
	if err := m.store.Write(m.current); err != nil {
		m.log.Error().Err(err).Msg("write-through failed")
		return fmt.Errorf("persisting value: %w", err)
	}
	return nil
}

func pop(stack []string) (string, []string) {
	n := len(stack) - 1
	return stack[n], stack[:n]
}
