package store

import "os"

// EnvStore keeps the variable in the process environment. Writes are only
// visible to this process and its children.
type EnvStore struct {
	Name string
}

func (s *EnvStore) Read() (string, error) {
	v, _ := os.LookupEnv(s.Name)
	return v, nil
}

func (s *EnvStore) Write(value string) error {
	if err := os.Setenv(s.Name, value); err != nil {
		return &Error{Op: "write", Store: "env:" + s.Name, Err: err}
	}
	return nil
}
