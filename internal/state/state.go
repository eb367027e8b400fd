// Package state persists small client-local blobs (the weekly schedules and the
// active workout session) as TOML files in a single directory.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Keys of the blobs kept by the stores; each one is a file named <key>.toml.
const (
	KeyWeekSchedules = "week_schedules"
	KeyActiveWorkout = "active_workout"
)

// Store is a keyed blob store. Each key maps to one file; writes are
// last-writer-wins.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".toml")
}

// Load decodes the blob stored under key into v. found is false when no blob exists.
func (s *Store) Load(key string, v any) (found bool, err error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	if err := toml.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// Save replaces the blob under key. The file is written next to its final
// location and renamed so readers never observe a partial write.
func (s *Store) Save(key string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path(key))
}

// Remove deletes the blob under key. Removing a missing blob is not an error.
func (s *Store) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}
