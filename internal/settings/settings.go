// Package settings persists client credentials and the token state to a
// JSON file under the user's config directory.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/teemow/tasknotes/internal/auth"
)

// Settings is the persisted configuration. The token field mirrors the
// in-memory token state so a restart resumes an authenticated session.
type Settings struct {
	ClientID           string          `json:"clientId,omitempty"`
	ClientSecret       string          `json:"clientSecret,omitempty"`
	Token              *auth.TokenData `json:"token,omitempty"`
	RefreshIntervalSec int             `json:"refreshIntervalSec,omitempty"`
}

// Store loads and saves settings.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// FileStore keeps settings in a single JSON file. The file is written
// with owner-only permissions because it holds tokens.
type FileStore struct {
	path string
}

// DefaultPath returns the settings location under the XDG config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "tasknotes", "settings.json"), nil
}

// NewFileStore creates a store backed by the given path. An empty path
// selects DefaultPath.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields zero settings,
// not an error, so first runs need no setup step.
func (s *FileStore) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var out Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	return out, nil
}

// Save writes the settings file, creating the parent directory when
// needed.
func (s *FileStore) Save(in Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// SaveToken updates just the token field, preserving the rest of the
// file. It satisfies the token sink used by the auth store.
func (s *FileStore) SaveToken(token *auth.TokenData) error {
	current, err := s.Load()
	if err != nil {
		return err
	}
	current.Token = token
	return s.Save(current)
}
