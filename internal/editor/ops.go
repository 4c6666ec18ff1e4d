package editor

import (
	"fmt"
	"strings"

	"pathedit/internal/model"
)

// OnEntryValueChanged sets entry's value and applies the list rules:
// an empty value removes the entry, and a value containing the delimiter is
// split so that the entry keeps the first token and the remaining tokens
// become new entries right after it. The outermost call commits once.
// Editing an entry that is not in the list only changes its value.
func (e *Editor) OnEntryValueChanged(entry *model.PathEntry, value string) error {
	owner, end := e.begin()
	defer end()

	entry.SetValue(value)
	idx := e.IndexOf(entry)
	if idx < 0 {
		return nil
	}

	switch {
	case value == "":
		e.removeAt(idx)
	case strings.Contains(value, e.delim):
		tokens := e.split(value)
		if err := e.OnEntryValueChanged(entry, tokens[0]); err != nil {
			return err
		}
		// The first token may have been empty and taken the entry with it.
		pos := idx
		if e.IndexOf(entry) >= 0 {
			pos = idx + 1
		}
		for i, tok := range tokens[1:] {
			e.insertAt(pos+i, model.NewPathEntry(tok, e.valid))
		}
		e.log.Debug().Int("index", idx).Int("entries", len(tokens)).Msg("split pasted value")
	}

	if !owner {
		return nil
	}
	return e.commit("edit")
}

// EditAt edits the entry at index i. It reports false if i is out of range.
func (e *Editor) EditAt(i int, value string) (bool, error) {
	entry := e.At(i)
	if entry == nil {
		return false, nil
	}
	return true, e.OnEntryValueChanged(entry, value)
}

// Append adds value as a new last entry, splitting it like an edit. An
// empty value is ignored.
func (e *Editor) Append(value string) error {
	if value == "" {
		return nil
	}
	owner, end := e.begin()
	defer end()

	entry := model.NewPathEntry("", e.valid)
	e.entries = append(e.entries, entry)
	if err := e.OnEntryValueChanged(entry, value); err != nil {
		return err
	}
	if !owner {
		return nil
	}
	return e.commit("append")
}

// Remove deletes entry, exactly as editing its value to "" would.
func (e *Editor) Remove(entry *model.PathEntry) (bool, error) {
	if e.IndexOf(entry) < 0 {
		return false, nil
	}
	return true, e.OnEntryValueChanged(entry, "")
}

// Purge removes every invalid entry, keeping the order of the rest, and
// always commits once, even when nothing was removed.
func (e *Editor) Purge() (removed int, err error) {
	removed = e.purgeInvalid()
	e.log.Info().Int("removed", removed).Int("remaining", len(e.entries)).Msg("purge")
	return removed, e.commit("purge")
}

func (e *Editor) purgeInvalid() int {
	_, end := e.begin()
	defer end()

	kept := e.entries[:0]
	for _, entry := range e.entries {
		if entry.IsValid() {
			kept = append(kept, entry)
		}
	}
	removed := len(e.entries) - len(kept)
	for i := len(kept); i < len(e.entries); i++ {
		e.entries[i] = nil
	}
	e.entries = kept
	return removed
}

// CanDrag reports whether entry can be picked up, i.e. is in the list.
func (e *Editor) CanDrag(entry *model.PathEntry) bool {
	return e.IndexOf(entry) >= 0
}

// Drop moves entry to just after target. A target that is not in the list
// (including nil) moves entry to the front. Dropping an entry onto itself or
// dropping an entry that is not in the list does nothing. A move commits
// once.
func (e *Editor) Drop(entry, target *model.PathEntry) (bool, error) {
	if entry == target {
		return false, nil
	}
	idx := e.IndexOf(entry)
	if idx < 0 {
		return false, nil
	}
	owner, end := e.begin()
	defer end()

	e.removeAt(idx)
	e.insertAt(e.IndexOf(target)+1, entry)

	if !owner {
		return true, nil
	}
	return true, e.commit("drop")
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo. A write-through error is returned after the list has
// already been restored.
func (e *Editor) Undo() (bool, error) {
	v, ok, err := e.history.Undo()
	if !ok {
		return false, err
	}
	e.Load(v)
	e.log.Info().Int("entries", len(e.entries)).Msg("undo")
	return true, err
}

// Redo re-applies the most recently undone snapshot.
func (e *Editor) Redo() (bool, error) {
	v, ok, err := e.history.Redo()
	if !ok {
		return false, err
	}
	e.Load(v)
	e.log.Info().Int("entries", len(e.entries)).Msg("redo")
	return true, err
}

func (e *Editor) commit(op string) error {
	value := e.Serialize()
	if err := e.history.Commit(value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	e.log.Debug().Str("op", op).Int("entries", len(e.entries)).Msg("committed")
	return nil
}

func (e *Editor) removeAt(i int) {
	copy(e.entries[i:], e.entries[i+1:])
	e.entries[len(e.entries)-1] = nil
	e.entries = e.entries[:len(e.entries)-1]
}

func (e *Editor) insertAt(i int, entry *model.PathEntry) {
	e.entries = append(e.entries, nil)
	copy(e.entries[i+1:], e.entries[i:])
	e.entries[i] = entry
}
