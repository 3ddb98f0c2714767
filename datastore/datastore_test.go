package datastore

import (
	"path/filepath"
	"testing"
)

func TestPutGetDelete(t *testing.T) {
	t.Parallel()
	ds, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer ds.Close()

	if _, ok := ds.Get("missing"); ok {
		t.Fatal("Get on empty store should miss")
	}

	ds.Put("guild1", map[string]any{"hello": "world"})
	got, ok := ds.Get("guild1")
	if !ok {
		t.Fatal("Get should hit after Put")
	}
	m, ok := got.(map[string]any)
	if !ok || m["hello"] != "world" {
		t.Fatalf("Get = %v", got)
	}

	ds.Delete("guild1")
	if _, ok := ds.Get("guild1"); ok {
		t.Fatal("Get should miss after Delete")
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()
	ds, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer ds.Close()

	ds.Put("b", 1)
	ds.Put("a", 2)

	keys := ds.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys = %v, want 2 entries", keys)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "store.json")

	ds, err := New(path)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	ds.Put("guild1", map[string]any{"n": float64(42)})
	if err := ds.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get("guild1")
	if !ok {
		t.Fatal("value lost across reopen")
	}
	m := got.(map[string]any)
	if m["n"] != float64(42) {
		t.Fatalf("value = %v", m["n"])
	}
}

func TestOperationsAfterCloseAreNoops(t *testing.T) {
	t.Parallel()
	ds, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := ds.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	ds.Put("k", "v")
	if _, ok := ds.Get("k"); ok {
		t.Fatal("Put after Close should be ignored")
	}
}
