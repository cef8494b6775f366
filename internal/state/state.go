// Package state persists the active-theme state file. It is the single owner
// of state.json: loaded once at startup, written back on every mutation with
// a temp-file-and-rename so readers never observe a torn write.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tingeapp/tinge/internal/models"
)

// Store owns the persisted ActiveThemeState.
type Store struct {
	mu      sync.Mutex
	path    string
	current models.ActiveThemeState
}

// NewStore creates a store persisting to path. Call Load before first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the state file. A missing file is not an error; the zero state
// is used until the first successful apply.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.current = models.ActiveThemeState{}
			return nil
		}
		return fmt.Errorf("reading state file: %w", err)
	}

	var loaded models.ActiveThemeState
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing state file: %w", err)
	}
	s.current = loaded
	return nil
}

// Get returns a copy of the current state.
func (s *Store) Get() models.ActiveThemeState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.current
	out.RecencyList = append([]string(nil), s.current.RecencyList...)
	return out
}

// Update applies fn to the state and persists the result. The in-memory
// state is only replaced after the file write succeeds.
func (s *Store) Update(fn func(*models.ActiveThemeState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	next.RecencyList = append([]string(nil), s.current.RecencyList...)
	fn(&next)

	if err := s.write(next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// write serializes state to a temp file in the same directory and renames it
// over the target, relying on rename atomicity on the host filesystem.
func (s *Store) write(st models.ActiveThemeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
