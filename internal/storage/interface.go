package storage

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by Provider.Get for a key that was never written
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a provider is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// MemoryPath selects the in-memory provider
const MemoryPath = ":memory:"

// Provider is a durable, flat key-value namespace. Values are opaque bytes; writes
// overwrite the whole value.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Clear() error

	// Utils
	GetConfigPath() string
}

// NewProvider picks a backend from the path: ".json" files use the JSON document
// store, MemoryPath keeps everything in memory and anything else is a SQLite database.
func NewProvider(path string) Provider {
	switch {
	case path == MemoryPath:
		return NewMemoryStore()
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		return NewJSONStore(path)
	default:
		return NewSQLiteStore(path)
	}
}
