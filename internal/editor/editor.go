// Package editor keeps an ordered list of PATH entries in sync with the
// single delimited string they are stored as.
//
// Every user-visible operation (edit, append, remove, purge, drop) commits
// at most one snapshot to the history, however many rows it touches. Load,
// Undo and Redo replay history and never commit.
package editor

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"pathedit/internal/logging"
	"pathedit/internal/model"
)

// History is the snapshot log the editor commits to.
type History interface {
	Current() string
	Commit(value string) error
	Undo() (string, bool, error)
	Redo() (string, bool, error)
	CanUndo() bool
	CanRedo() bool
}

// Editor owns the ordered list of entries. It is not safe for concurrent use.
type Editor struct {
	entries []*model.PathEntry
	history History
	delim   string
	valid   model.Validator
	log     zerolog.Logger

	// depth counts the operations currently in progress on the call stack.
	// The operation that raises it from zero owns the commit.
	depth int
}

// Option configures an Editor.
type Option func(*Editor)

// WithDelimiter sets the list separator. The default is os.PathListSeparator.
func WithDelimiter(d rune) Option {
	return func(e *Editor) {
		e.delim = string(d)
	}
}

// WithValidator sets the validity check used for new entries. The default
// is model.DirExists.
func WithValidator(v model.Validator) Option {
	return func(e *Editor) {
		e.valid = v
	}
}

// New creates an editor loaded from the history's current value.
func New(h History, opts ...Option) *Editor {
	e := &Editor{
		history: h,
		delim:   string(os.PathListSeparator),
		valid:   model.DirExists,
		log:     logging.GetLogger("editor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Load(h.Current())
	return e
}

// begin enters an operation. owner reports whether the caller is the
// outermost one; end must be called on every exit path.
func (e *Editor) begin() (owner bool, end func()) {
	owner = e.depth == 0
	e.depth++
	return owner, func() { e.depth-- }
}

// Delimiter returns the list separator.
func (e *Editor) Delimiter() string {
	return e.delim
}

// Entries returns a snapshot of the list. The entries themselves are shared.
func (e *Editor) Entries() []*model.PathEntry {
	out := make([]*model.PathEntry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Values returns the entry values in order.
func (e *Editor) Values() []string {
	out := make([]string, len(e.entries))
	for i, entry := range e.entries {
		out[i] = entry.Value()
	}
	return out
}

// Len returns the number of entries.
func (e *Editor) Len() int {
	return len(e.entries)
}

// At returns the entry at index i, or nil if i is out of range.
func (e *Editor) At(i int) *model.PathEntry {
	if i < 0 || i >= len(e.entries) {
		return nil
	}
	return e.entries[i]
}

// IndexOf returns the position of entry, or -1.
func (e *Editor) IndexOf(entry *model.PathEntry) int {
	for i, x := range e.entries {
		if x == entry {
			return i
		}
	}
	return -1
}

// CanUndo reports whether Undo has a snapshot to restore.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether Redo has a snapshot to restore.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// Load replaces the whole list with the entries of serialized. It does not
// commit.
func (e *Editor) Load(serialized string) {
	_, end := e.begin()
	defer end()

	tokens := e.split(serialized)
	e.entries = make([]*model.PathEntry, 0, len(tokens))
	for _, tok := range tokens {
		e.entries = append(e.entries, model.NewPathEntry(tok, e.valid))
	}
}

// Serialize joins the entries, each followed by the delimiter. An empty list
// serializes to "".
func (e *Editor) Serialize() string {
	var b strings.Builder
	for _, entry := range e.entries {
		b.WriteString(entry.Value())
		b.WriteString(e.delim)
	}
	return b.String()
}

// split cuts s on the delimiter. A single trailing delimiter terminates the
// last entry rather than opening an empty one, so that split(Serialize())
// gives back the same values. "" yields no entries; the delimiter alone
// yields one empty entry.
func (e *Editor) split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, e.delim), e.delim)
}
