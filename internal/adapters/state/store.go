// Package state persists selection state in a YAML file.
package state

import (
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/capstan-tools/capstan/internal/core/domain"
	"github.com/capstan-tools/capstan/internal/core/ports"
)

// Store implements ports.SelectionStore on a single flat YAML document. Keys
// are the encoded StateKeys, so one file serves any number of workspaces.
type Store struct {
	path   string
	mu     sync.Mutex
	values map[string]string
	loaded bool
}

// NewStore creates a store backed by the file at path. The file is created
// lazily on the first Put.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the state file under the user config directory, falling
// back to a dotfile in the home directory.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "capstan", "state.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".capstan-state.yaml"
	}
	return filepath.Join(home, ".capstan-state.yaml")
}

// Get retrieves a persisted value.
func (s *Store) Get(key domain.StateKey) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return "", false, err
	}
	v, ok := s.values[key.Encode()]
	return v, ok, nil
}

// Put stores a value and writes the file.
func (s *Store) Put(key domain.StateKey, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	s.values[key.Encode()] = value
	return s.flush()
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key domain.StateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if _, ok := s.values[key.Encode()]; !ok {
		return nil
	}
	delete(s.values, key.Encode())
	return s.flush()
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}
	s.values = make(map[string]string)
	data, err := os.ReadFile(s.path) //nolint:gosec // path is chosen by us
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return zerr.Wrap(err, "failed to read state file")
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return zerr.Wrap(err, "failed to parse state file")
	}
	s.loaded = true
	return nil
}

// flush writes through a temp file and rename so readers never observe a
// partial document.
func (s *Store) flush() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return zerr.Wrap(err, "failed to encode state")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerr.Wrap(err, "failed to create state directory")
	}
	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp state file")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to write state")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to close state file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to replace state file")
	}
	return nil
}

var _ ports.SelectionStore = (*Store)(nil)
