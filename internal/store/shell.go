package store

import (
	"fmt"
	"regexp"
	"strings"
)

// Shell defines the shell-specific syntax for persisting the variable.
type Shell interface {
	// ExportLine renders the assignment of value to name.
	ExportLine(name, value string) string
	// Assignment returns a regexp whose first group captures the raw
	// right-hand side of an assignment to name.
	Assignment(name string) *regexp.Regexp
	Name() string
}

// ZshShell implements Shell for Zsh.
type ZshShell struct{}

func (s *ZshShell) ExportLine(name, value string) string {
	return fmt.Sprintf("export %s=%s", name, quote(value))
}

func (s *ZshShell) Assignment(name string) *regexp.Regexp {
	return posixAssignment(name)
}

func (s *ZshShell) Name() string {
	return "zsh"
}

// BashShell implements Shell for Bash.
type BashShell struct{}

func (s *BashShell) ExportLine(name, value string) string {
	return fmt.Sprintf("export %s=%s", name, quote(value))
}

func (s *BashShell) Assignment(name string) *regexp.Regexp {
	return posixAssignment(name)
}

func (s *BashShell) Name() string {
	return "bash"
}

// FishShell implements Shell for fish. fish splits PATH-like variables on
// colons when they are set from a single quoted string.
type FishShell struct{}

func (s *FishShell) ExportLine(name, value string) string {
	return fmt.Sprintf("set -gx %s %s", name, quote(value))
}

func (s *FishShell) Assignment(name string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*set\s+(?:-[a-zA-Z]+\s+)*` + regexp.QuoteMeta(name) + `\s+(.*)$`)
}

func (s *FishShell) Name() string {
	return "fish"
}

// DetectShell attempts to identify the user's shell or defaults to Bash.
func DetectShell(shellPath string) Shell {
	switch {
	case strings.Contains(shellPath, "fish"):
		return &FishShell{}
	case strings.Contains(shellPath, "zsh"):
		return &ZshShell{}
	}
	return &BashShell{}
}

// ShellByName resolves a configured shell name; empty means detect from
// shellPath.
func ShellByName(name, shellPath string) (Shell, error) {
	switch name {
	case "":
		return DetectShell(shellPath), nil
	case "bash":
		return &BashShell{}, nil
	case "zsh":
		return &ZshShell{}, nil
	case "fish":
		return &FishShell{}, nil
	}
	return nil, fmt.Errorf("unsupported shell %q", name)
}

// Matches: PATH=val, PATH='val', export PATH="val", typeset -x PATH=val
func posixAssignment(name string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*(?:(?:export|typeset\s+-x|declare\s+-x)\s+)?` + regexp.QuoteMeta(name) + `=(.*)$`)
}

// quote wraps v in single quotes, escaping embedded single quotes. A value
// that references variables ($HOME, ${PATH}) is double-quoted instead so the
// shell still expands them when the snippet is sourced.
func quote(v string) string {
	if strings.Contains(v, "$") {
		return `"` + escapeDouble(v) + `"`
	}
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// escapeDouble escapes the characters that are special inside double quotes,
// except $. A backslash already escaping a $ is kept as it is.
func escapeDouble(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '\\' && i+1 < len(v) && v[i+1] == '$':
			b.WriteString(`\$`)
			i++
		case c == '"' || c == '\\' || c == '`':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// unquote reverses quote and also accepts bare values. Variable references
// are kept as written; a \$ inside double quotes stays escaped.
func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return unescapeDouble(v[1 : len(v)-1])
	}

	var b strings.Builder
	inQuote := false
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
		case c == '\\' && !inQuote && i+1 < len(v):
			i++
			b.WriteByte(v[i])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unescapeDouble(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\\' && i+1 < len(v) {
			switch v[i+1] {
			case '"', '\\', '`':
				i++
				b.WriteByte(v[i])
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
