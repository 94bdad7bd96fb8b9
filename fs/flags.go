// Package fs provides file-backed persistence for local client state.
package fs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/starprep"
)

// Compile-time interface verification.
var _ starprep.FlagStore = (*FlagStore)(nil)

// DefaultFlagsPath returns the default location of the flags file.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/starprep,
// or the system temp directory if home is unavailable.
func DefaultFlagsPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "starprep", "flags.json")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "starprep", "flags.json")
	}
	return filepath.Join(home, ".config", "starprep", "flags.json")
}

// FlagStore persists boolean flags as a JSON object in a single file.
// Used for one-time gates such as "onboarding tour completed".
type FlagStore struct {
	path string
}

// NewFlagStore creates a FlagStore backed by the file at path.
func NewFlagStore(path string) *FlagStore {
	return &FlagStore{path: path}
}

// Flag returns the value of key and whether it has ever been set.
// A missing or unreadable file reads as "never set".
func (s *FlagStore) Flag(key string) (value, ok bool) {
	flags, err := s.load()
	if err != nil {
		return false, false
	}
	value, ok = flags[key]
	return value, ok
}

// SetFlag writes key to value, creating the file and its directory as needed.
func (s *FlagStore) SetFlag(key string, value bool) error {
	flags, err := s.load()
	if err != nil {
		return err
	}
	if flags == nil {
		flags = make(map[string]bool)
	}
	flags[key] = value
	return s.save(flags)
}

// RemoveFlag deletes key. Removing an absent key is not an error.
func (s *FlagStore) RemoveFlag(key string) error {
	flags, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := flags[key]; !ok {
		return nil
	}
	delete(flags, key)
	return s.save(flags)
}

func (s *FlagStore) load() (map[string]bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var flags map[string]bool
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

func (s *FlagStore) save(flags map[string]bool) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(flags)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
