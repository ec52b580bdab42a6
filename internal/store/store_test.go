package store

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func TestSetGet(t *testing.T) {
	s, _ := testStore(t)

	if err := s.Set("k", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := s.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(got) != "v1" {
		t.Errorf("got %q, want %q", got, "v1")
	}
}

func TestGetMissing(t *testing.T) {
	s, _ := testStore(t)

	_, ok, err := s.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected miss for absent key")
	}
}

func TestSetOverwrites(t *testing.T) {
	s, _ := testStore(t)

	if err := s.Set("k", []byte("v1")); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := s.Set("k", []byte("v2")); err != nil {
		t.Fatalf("second set: %v", err)
	}

	got, ok, _ := s.Get("k")
	if !ok || string(got) != "v2" {
		t.Errorf("got %q, want %q", got, "v2")
	}
}

func TestDelete(t *testing.T) {
	s, _ := testStore(t)

	s.Set("a", []byte("1"))
	s.Set("b", []byte("2"))

	if err := s.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok, _ := s.Get("a"); ok {
		t.Error("deleted key still present")
	}
	if _, ok, _ := s.Get("b"); !ok {
		t.Error("unrelated key was removed")
	}
}

func TestClear(t *testing.T) {
	s, dbPath := testStore(t)

	s.Set("a", []byte("1"))
	s.Set("b", []byte("2"))

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	count, _, err := s.Stats(dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty store, got %d entries", count)
	}
}

func TestStats(t *testing.T) {
	s, dbPath := testStore(t)

	s.Set("a", []byte("1"))
	s.Set("b", []byte("2"))

	count, size, err := s.Stats(dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 entries, got %d", count)
	}
	if size <= 0 {
		t.Errorf("expected positive file size, got %d", size)
	}
}
