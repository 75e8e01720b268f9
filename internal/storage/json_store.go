package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperr "github.com/momentum-app/momentum/internal/errors"
)

type fileStore struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore persists the key-value map as a single JSON file. Selected when
// the config path ends in .json.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version: 1,
		Values:  make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'momentum init' first")
		}
		return &apperr.StorageError{Op: "read", Err: err}
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return &apperr.StorageError{Op: "parse", Err: err}
	}

	if s.store.Values == nil {
		s.store.Values = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return &apperr.StorageError{Op: "serialize", Err: err}
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return &apperr.StorageError{Op: "write", Err: err}
	}

	return nil
}

func (s *JSONStore) Read(key string) (string, bool, error) {
	if s.store == nil {
		return "", false, &apperr.StorageError{Op: "read", Key: key, Err: errNotLoaded}
	}

	value, ok := s.store.Values[key]
	return value, ok, nil
}

func (s *JSONStore) Write(key, value string) error {
	if s.store == nil {
		return &apperr.StorageError{Op: "write", Key: key, Err: errNotLoaded}
	}

	s.store.Values[key] = value
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
