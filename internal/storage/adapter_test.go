package storage

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

type record struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestAdapterGetAbsentAndMalformed(t *testing.T) {
	provider := NewMemoryStore()
	adapter := NewAdapter(provider)

	if got := Load(adapter, "habits", []record{}); len(got) != 0 {
		t.Errorf("expected default for missing key, got %v", got)
	}

	if err := provider.Set("habits", []byte("{broken")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got := Load(adapter, "habits", []record{{ID: "default"}})
	if len(got) != 1 || got[0].ID != "default" {
		t.Errorf("expected default for malformed value, got %v", got)
	}

	if err := provider.Set("habits", []byte("null")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if m := Load(adapter, "habits", map[string]int{}); m == nil {
		t.Error("expected non-nil default for null value")
	}
}

func TestAdapterSetAndLoad(t *testing.T) {
	adapter := NewAdapter(NewMemoryStore())

	want := []record{{ID: "a", Count: 1}, {ID: "b", Count: 2}}
	if err := adapter.Set("records", want); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got := Load(adapter, "records", []record(nil))
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAdapterSetReportsBackendError(t *testing.T) {
	// A JSONStore that was never initialized refuses writes
	adapter := NewAdapter(NewJSONStore(filepath.Join(t.TempDir(), "data.json")))
	if err := adapter.Set("records", []record{}); err == nil {
		t.Error("expected error from unloaded backend")
	}
}

func TestMutateSkipsUnchangedWrites(t *testing.T) {
	provider := NewMemoryStore()
	adapter := NewAdapter(provider)

	_, err := Mutate(adapter, "records", []record{}, func(r []record) ([]record, bool) {
		return r, false
	})
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	keys, _ := provider.Keys()
	if len(keys) != 0 {
		t.Errorf("expected no write for unchanged value, got keys %v", keys)
	}
}

func TestMutateSerializesConcurrentUpdates(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "data.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	defer store.Close()
	adapter := NewAdapter(store)

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := Mutate(adapter, "records", []record{}, func(r []record) ([]record, bool) {
				return append(r, record{ID: fmt.Sprint(i)}), true
			})
			if err != nil {
				t.Errorf("mutate %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	got := Load(adapter, "records", []record{})
	if len(got) != writers {
		t.Errorf("expected %d records, got %d (lost updates)", writers, len(got))
	}
}
