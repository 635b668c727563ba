package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/julianstephens/streaklit/internal/logger"
)

// Adapter stores typed values as JSON documents in a Provider.
//
// Reads never fail: a missing key, a backend error or a malformed document all
// read as "absent" and are logged, so one corrupted record cannot break
// unrelated features. Writes overwrite the whole value and return their error.
type Adapter struct {
	provider Provider

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAdapter(provider Provider) *Adapter {
	return &Adapter{
		provider: provider,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Provider returns the backend the adapter writes to
func (a *Adapter) Provider() Provider {
	return a.provider
}

// Get decodes the value stored under key into dst and reports whether it did.
// dst may be partially written when false is returned.
func (a *Adapter) Get(key string, dst any) bool {
	data, err := a.provider.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("failed to read key, treating as absent", "key", key, "error", err)
		}
		return false
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("malformed value, treating as absent", "key", key, "error", err)
		return false
	}
	return true
}

// Set serializes value and overwrites whatever is stored under key
func (a *Adapter) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize %q: %w", key, err)
	}
	if err := a.provider.Set(key, data); err != nil {
		logger.Error("failed to write key", "key", key, "error", err)
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	return nil
}

// Raw returns the stored bytes for key without decoding them
func (a *Adapter) Raw(key string) ([]byte, error) {
	return a.provider.Get(key)
}

// Keys lists every key currently stored
func (a *Adapter) Keys() ([]string, error) {
	return a.provider.Keys()
}

// Clear wipes every key in the namespace
func (a *Adapter) Clear() error {
	if err := a.provider.Clear(); err != nil {
		logger.Error("failed to clear storage", "error", err)
		return err
	}
	logger.Info("storage cleared")
	return nil
}

// lock serializes read-modify-write cycles on a single key within this process
func (a *Adapter) lock(key string) func() {
	a.mu.Lock()
	l, ok := a.locks[key]
	if !ok {
		l = &sync.Mutex{}
		a.locks[key] = l
	}
	a.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Load returns the value stored under key, or def when it is absent or unreadable
func Load[T any](a *Adapter, key string, def T) T {
	var v T
	if !a.Get(key, &v) {
		return def
	}
	return v
}

// Mutate reads key (def when absent), applies fn and writes the result back when fn
// reports a change. The cycle holds a per-key lock so goroutines sharing the adapter
// cannot lose each other's updates; separate processes still race and the last
// write wins. def must be a fresh value, fn may modify it in place.
func Mutate[T any](a *Adapter, key string, def T, fn func(T) (T, bool)) (T, error) {
	unlock := a.lock(key)
	defer unlock()

	current := Load(a, key, def)
	next, changed := fn(current)
	if !changed {
		return next, nil
	}
	return next, a.Set(key, next)
}
