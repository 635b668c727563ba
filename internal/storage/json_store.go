package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// JSONStore keeps the whole namespace in a single JSON document that is
// rewritten on every change.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store map[string]json.RawMessage
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	s.store = make(map[string]json.RawMessage)
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'streaklit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := make(map[string]json.RawMessage)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &store); err != nil {
			return fmt.Errorf("failed to parse storage: %w", err)
		}
	}
	s.store = store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling file first so a crash mid-write keeps the previous document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrNotLoaded
	}
	value, ok := s.store[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone([]byte(value)), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	prev, had := s.store[key]
	s.store[key] = json.RawMessage(slices.Clone(value))
	if err := s.save(); err != nil {
		// keep memory in step with the document on disk
		if had {
			s.store[key] = prev
		} else {
			delete(s.store, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	prev, ok := s.store[key]
	if !ok {
		return nil
	}
	delete(s.store, key)
	if err := s.save(); err != nil {
		s.store[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrNotLoaded
	}
	return slices.Sorted(maps.Keys(s.store)), nil
}

func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	prev := s.store
	s.store = make(map[string]json.RawMessage)
	if err := s.save(); err != nil {
		s.store = prev
		return err
	}
	return nil
}

// GetConfigPath returns the path to the underlying JSON document.
//
// Running multiple streaklit processes against the same file at the same time is
// not supported; the last writer wins.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
