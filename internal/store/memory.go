package store

// MemoryStore holds the value in memory and records every write. It backs
// --dry-run and the tests.
type MemoryStore struct {
	Value  string
	Writes []string

	// FailWith, when set, makes Read and Write fail with this error.
	FailWith error
}

// NewMemoryStore returns a store seeded with value.
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{Value: value}
}

func (s *MemoryStore) Read() (string, error) {
	if s.FailWith != nil {
		return "", &Error{Op: "read", Store: "memory", Err: s.FailWith}
	}
	return s.Value, nil
}

func (s *MemoryStore) Write(value string) error {
	if s.FailWith != nil {
		return &Error{Op: "write", Store: "memory", Err: s.FailWith}
	}
	s.Value = value
	s.Writes = append(s.Writes, value)
	return nil
}
