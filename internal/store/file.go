package store

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps the variable as a single assignment line in a shell
// snippet (e.g. ~/.config/pathedit/path.sh) meant to be sourced from the
// user's rc file. Other lines in the snippet are preserved.
type FileStore struct {
	Path  string
	Name  string
	Shell Shell
}

func (s *FileStore) describe() string {
	return "file:" + s.Path
}

// Read returns the value of the last assignment to Name. A missing file or a
// file without an assignment reads as the empty string.
func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", &Error{Op: "read", Store: s.describe(), Err: err}
	}

	re := s.Shell.Assignment(s.Name)
	value := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	// Large buffer for long PATH lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)
	for scanner.Scan() {
		if m := re.FindStringSubmatch(scanner.Text()); m != nil {
			value = unquote(m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &Error{Op: "read", Store: s.describe(), Err: err}
	}
	return value, nil
}

// Write replaces every assignment to Name with a single export line, or
// appends one if none exists, and atomically swaps the file in.
func (s *FileStore) Write(value string) error {
	var lines []string
	data, err := os.ReadFile(s.Path)
	switch {
	case err == nil:
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) == 1 && lines[0] == "" {
			lines = nil
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return &Error{Op: "write", Store: s.describe(), Err: err}
	}

	re := s.Shell.Assignment(s.Name)
	export := s.Shell.ExportLine(s.Name, value)

	out := make([]string, 0, len(lines)+1)
	written := false
	for _, line := range lines {
		if re.MatchString(line) {
			if !written {
				out = append(out, export)
				written = true
			}
			continue
		}
		out = append(out, line)
	}
	if !written {
		out = append(out, export)
	}

	// Write through symlinks so a snippet kept in a dotfiles repo stays linked.
	target := s.Path
	if resolved, err := filepath.EvalSymlinks(s.Path); err == nil {
		target = resolved
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return &Error{Op: "write", Store: s.describe(), Err: err}
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(strings.Join(out, "\n")+"\n"), 0o644); err != nil {
		return &Error{Op: "write", Store: s.describe(), Err: err}
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return &Error{Op: "write", Store: s.describe(), Err: err}
	}
	return nil
}
