package cache

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"stackread/internal/store"
)

func testCache(t *testing.T) (*Cache, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRoundTrip(t *testing.T) {
	c, _ := testCache(t)

	want := payload{Name: "x", Count: 3}
	if err := Write(c, "k", want); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, ok, err := Read[payload](c, "k")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !ok {
		t.Fatal("expected fresh entry")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReadMissing(t *testing.T) {
	c, _ := testCache(t)

	_, ok, err := Read[payload](c, "nope")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ok {
		t.Error("expected miss for absent key")
	}
}

func TestLazyExpiry(t *testing.T) {
	c, s := testCache(t)

	now := time.Now()
	c.now = func() time.Time { return now }
	if err := Write(c, "k", payload{Name: "x"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// One minute before the window closes: still fresh.
	c.now = func() time.Time { return now.Add(TTL - time.Minute) }
	if _, ok, _ := Read[payload](c, "k"); !ok {
		t.Error("entry inside the window read as stale")
	}

	// At the window boundary: stale.
	c.now = func() time.Time { return now.Add(TTL) }
	if _, ok, _ := Read[payload](c, "k"); ok {
		t.Error("entry at the window boundary read as fresh")
	}

	// Lazy: the stale entry is still physically stored.
	if _, ok, _ := s.Get("k"); !ok {
		t.Error("stale entry was deleted on read")
	}
}

func TestWriteOverwritesStale(t *testing.T) {
	c, _ := testCache(t)

	now := time.Now()
	c.now = func() time.Time { return now }
	Write(c, "k", payload{Name: "old"})

	c.now = func() time.Time { return now.Add(2 * TTL) }
	Write(c, "k", payload{Name: "new"})

	got, ok, _ := Read[payload](c, "k")
	if !ok {
		t.Fatal("expected fresh entry after overwrite")
	}
	if got.Name != "new" {
		t.Errorf("got %q, want %q", got.Name, "new")
	}
}

func TestEnvelopeLayout(t *testing.T) {
	c, s := testCache(t)

	if err := Write(c, "k", payload{Name: "x", Count: 1}); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, ok, _ := s.Get("k")
	if !ok {
		t.Fatal("entry not stored")
	}
	var env struct {
		Payload   json.RawMessage `json:"payload"`
		Timestamp int64           `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("stored bytes are not a {payload, timestamp} envelope: %v", err)
	}
	if env.Timestamp == 0 {
		t.Error("envelope timestamp missing")
	}
	written := time.UnixMilli(env.Timestamp)
	if d := time.Since(written); d < 0 || d > time.Minute {
		t.Errorf("timestamp not epoch millis of the write: %v", written)
	}
}

func TestUndecodableEntryReadsAsMiss(t *testing.T) {
	c, s := testCache(t)

	if err := s.Set("k", []byte("not json")); err != nil {
		t.Fatalf("set: %v", err)
	}

	_, ok, err := Read[payload](c, "k")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ok {
		t.Error("garbage entry read as a hit")
	}
}

func TestClearKey(t *testing.T) {
	c, _ := testCache(t)

	Write(c, ListKey, payload{Name: "list"})
	Write(c, ItemKey("a"), payload{Name: "a"})

	if err := c.ClearKey(ItemKey("a")); err != nil {
		t.Fatalf("clearKey: %v", err)
	}

	if _, ok, _ := Read[payload](c, ItemKey("a")); ok {
		t.Error("cleared key still readable")
	}
	if _, ok, _ := Read[payload](c, ListKey); !ok {
		t.Error("unrelated key was cleared")
	}
}

func TestItemKeyNeverAliasesList(t *testing.T) {
	if ItemKey("posts") == ListKey {
		t.Error("item key family aliases the list key")
	}
}
