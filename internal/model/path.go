package model

import (
	"os"
	"path/filepath"
	"strings"
)

// Validator reports whether a single PATH entry denotes a usable location.
type Validator func(value string) bool

// PathEntry represents a single directory in an edited PATH-like variable.
// Entries are compared by identity; two entries holding the same value are
// still distinct rows.
type PathEntry struct {
	value string
	valid Validator
}

// NewPathEntry creates an entry holding value, checked by valid.
// A nil validator treats every non-empty value as valid.
func NewPathEntry(value string, valid Validator) *PathEntry {
	return &PathEntry{value: value, valid: valid}
}

// Value returns the directory text (e.g. /usr/bin). It may be empty.
func (e *PathEntry) Value() string {
	return e.value
}

// SetValue replaces the text without any list bookkeeping. Callers that edit
// an entry belonging to an editor go through the editor instead.
func (e *PathEntry) SetValue(v string) {
	e.value = v
}

// IsValid asks the validator on every call; nothing is cached.
func (e *PathEntry) IsValid() bool {
	if e.valid == nil {
		return e.value != ""
	}
	return e.valid(e.value)
}

// DirExists is the default Validator: the value, after ~ and environment
// expansion, must name an existing directory.
func DirExists(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	info, err := os.Stat(ExpandPath(value))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ExpandPath expands a leading ~ and $VAR / ${VAR} references.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}

// KeepReference wraps valid so that a bare reference to the variable itself
// ($PATH or ${PATH}) is always valid: it stands for the inherited value,
// which cannot be checked as a single directory.
func KeepReference(name string, valid Validator) Validator {
	return func(value string) bool {
		v := strings.TrimSpace(value)
		if v == "$"+name || v == "${"+name+"}" {
			return true
		}
		if valid == nil {
			return value != ""
		}
		return valid(value)
	}
}
