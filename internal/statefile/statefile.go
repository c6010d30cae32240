// Package statefile stores the tracker state as a single JSON document on
// disk.
package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fakeyudi/hat/internal/tracker"
)

// ErrMalformed is returned by Load when the file exists but is not a valid
// state document.
var ErrMalformed = errors.New("state file is malformed")

// File is a tracker.Store backed by one JSON file.
type File struct {
	path string
}

// New returns a File at path. The parent directory is created on first save.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the location of the state file.
func (f *File) Path() string { return f.path }

// DefaultPath returns $XDG_DATA_HOME/hat/state.json, or
// ~/.local/share/hat/state.json when XDG_DATA_HOME is unset.
func DefaultPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", fmt.Errorf("resolving data directory: %w", err)
	}
	return filepath.Join(dir, "state.json"), nil
}

func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "hat"), nil
}

// Load reads the state file. A missing file yields an empty state.
func (f *File) Load() (tracker.PersistedState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tracker.EmptyState(), nil
		}
		return tracker.PersistedState{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var ps tracker.PersistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		return tracker.PersistedState{}, fmt.Errorf("%w: %s: %v", ErrMalformed, f.path, err)
	}
	if ps.Projects == nil {
		ps.Projects = map[string]tracker.PersistedProject{}
	}
	return ps, nil
}

// Save writes ps atomically via a temp file + os.Rename.
func (f *File) Save(ps tracker.PersistedState) (err error) {
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Write to a temp file in the same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(dir, "state-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist state: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	if err = os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}
