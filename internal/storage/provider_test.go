package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupProviders(t *testing.T) map[string]Provider {
	dir := t.TempDir()
	providers := map[string]Provider{
		"memory": NewMemoryStore(),
		"json":   NewJSONStore(filepath.Join(dir, "streaklit.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "streaklit.db")),
	}
	for name, p := range providers {
		if err := p.Init(); err != nil {
			t.Fatalf("%s: init failed: %v", name, err)
		}
		t.Cleanup(func() { p.Close() })
	}
	return providers
}

func TestProviderRoundTrip(t *testing.T) {
	for name, p := range setupProviders(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Get("habits"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound for missing key, got %v", err)
			}

			if err := p.Set("habits", []byte(`[{"id":"1"}]`)); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if err := p.Set("habits", []byte(`[{"id":"2"}]`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			if err := p.Set("logs", []byte(`{}`)); err != nil {
				t.Fatalf("set failed: %v", err)
			}

			got, err := p.Get("habits")
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if string(got) != `[{"id":"2"}]` {
				t.Errorf("expected overwritten value, got %s", got)
			}

			keys, err := p.Keys()
			if err != nil {
				t.Fatalf("keys failed: %v", err)
			}
			if len(keys) != 2 || keys[0] != "habits" || keys[1] != "logs" {
				t.Errorf("unexpected keys: %v", keys)
			}

			if err := p.Delete("logs"); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			if _, err := p.Get("logs"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected deleted key to be gone, got %v", err)
			}

			if err := p.Clear(); err != nil {
				t.Fatalf("clear failed: %v", err)
			}
			keys, err = p.Keys()
			if err != nil {
				t.Fatalf("keys failed: %v", err)
			}
			if len(keys) != 0 {
				t.Errorf("expected no keys after clear, got %v", keys)
			}
		})
	}
}

func TestProviderPersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	paths := map[string]string{
		"json":   filepath.Join(dir, "data.json"),
		"sqlite": filepath.Join(dir, "data.db"),
	}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			first := NewProvider(path)
			if err := first.Init(); err != nil {
				t.Fatalf("init failed: %v", err)
			}
			if err := first.Set("user_name", []byte(`"Sam"`)); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			first.Close()

			second := NewProvider(path)
			if err := second.Load(); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			defer second.Close()

			got, err := second.Get("user_name")
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if string(got) != `"Sam"` {
				t.Errorf("expected persisted value, got %s", got)
			}
		})
	}
}

func TestLoadUninitialized(t *testing.T) {
	dir := t.TempDir()
	for _, path := range []string{filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.db")} {
		if err := NewProvider(path).Load(); err == nil {
			t.Errorf("expected error loading %s before init", path)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("load must not create %s", path)
		}
	}
}

func TestJSONStoreRejectsInvalidJSON(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := store.Set("habits", []byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON value")
	}
}

func TestJSONStoreFailedWriteKeepsPreviousState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streaklit.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := store.Set("habits", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// a directory where the temp file goes makes every save fail
	if err := os.Mkdir(path+".tmp", 0o700); err != nil {
		t.Fatalf("failed to block temp file: %v", err)
	}

	if err := store.Set("habits", []byte(`[]`)); err == nil {
		t.Fatal("expected set to fail")
	}
	if err := store.Set("logs", []byte(`{}`)); err == nil {
		t.Fatal("expected set of a new key to fail")
	}
	if err := store.Delete("habits"); err == nil {
		t.Fatal("expected delete to fail")
	}
	if err := store.Clear(); err == nil {
		t.Fatal("expected clear to fail")
	}

	got, err := store.Get("habits")
	if err != nil {
		t.Fatalf("get after failed writes: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("habits = %s, want the last saved value", got)
	}
	if _, err := store.Get("logs"); !errors.Is(err, ErrNotFound) {
		t.Errorf("logs should not exist after a failed write, got %v", err)
	}

	if err := os.Remove(path + ".tmp"); err != nil {
		t.Fatal(err)
	}
	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	keys, err := reloaded.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "habits" {
		t.Errorf("keys on disk = %v, want [habits]", keys)
	}
}

func TestNewProviderSelectsBackend(t *testing.T) {
	if _, ok := NewProvider(MemoryPath).(*MemoryStore); !ok {
		t.Error("expected MemoryStore for :memory:")
	}
	if _, ok := NewProvider("/tmp/x/STREAKLIT.JSON").(*JSONStore); !ok {
		t.Error("expected JSONStore for .json path")
	}
	if _, ok := NewProvider("/tmp/x/streaklit.db").(*SQLiteStore); !ok {
		t.Error("expected SQLiteStore for other paths")
	}
}

func TestSQLiteStoreSchemaVersion(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "streaklit.db"))
	if _, _, err := store.SchemaVersion(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded before init, got %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	defer store.Close()

	if err := store.Ping(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("schema version failed: %v", err)
	}
	if current != latest || latest < 1 {
		t.Errorf("expected fully migrated schema, got current=%d latest=%d", current, latest)
	}
}
