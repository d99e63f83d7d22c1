// File: internal/client/store.go
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const storeVersion = 1

type storeFile struct {
	Version         int    `json:"version"`
	ActiveSessionID string `json:"active_session_id,omitempty"`
}

// Store persists the active session hint between runs.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the stored hint. Missing, unreadable, foreign-version or
// malformed contents all yield "" rather than an error.
func (s *Store) Load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}

	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil || f.Version != storeVersion {
		return ""
	}
	if _, err := uuid.Parse(f.ActiveSessionID); err != nil {
		return ""
	}
	return f.ActiveSessionID
}

// Save writes the hint through a temp file and rename.
func (s *Store) Save(activeSessionID string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.Marshal(storeFile{Version: storeVersion, ActiveSessionID: activeSessionID})
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// Clear removes the stored hint.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
