// Package cache adds a freshness window on top of the key/value store.
// Entries are wrapped in a JSON envelope carrying their write time and
// expire lazily: a stale entry reads as a miss but stays on disk until
// the next write for its key overwrites it.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"stackread/internal/store"
)

// TTL is the freshness window shared by all keys.
const TTL = 24 * time.Hour

// ListKey holds the full post list; per-post entries live under
// ItemKey(slug). The two families never alias.
const ListKey = "posts"

func ItemKey(slug string) string {
	return "item:" + slug
}

type envelope struct {
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"` // epoch millis
}

type Cache struct {
	store *store.Store
	ttl   time.Duration
	now   func() time.Time
}

func New(s *store.Store) *Cache {
	return &Cache{store: s, ttl: TTL, now: time.Now}
}

// fresh reports whether an entry written at writtenAt is still inside
// the window at now.
func fresh(now, writtenAt time.Time, ttl time.Duration) bool {
	return now.Sub(writtenAt) < ttl
}

// Read returns the cached value for key. The second return is false
// when the key is absent, stale, or undecodable; the entry is not
// deleted in any of those cases.
func Read[T any](c *Cache, key string) (T, bool, error) {
	var zero T

	raw, ok, err := c.store.Get(key)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, false, nil
	}
	writtenAt := time.UnixMilli(env.Timestamp)
	if !fresh(c.now(), writtenAt, c.ttl) {
		return zero, false, nil
	}

	var v T
	if err := json.Unmarshal(env.Payload, &v); err != nil {
		return zero, false, nil
	}
	return v, true, nil
}

// Write stores v under key with the current time, overwriting any
// previous entry.
func Write[T any](c *Cache, key string, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache value for %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{
		Payload:   payload,
		Timestamp: c.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("encoding cache envelope for %s: %w", key, err)
	}
	return c.store.Set(key, raw)
}

func (c *Cache) ClearKey(key string) error {
	return c.store.Delete(key)
}

func (c *Cache) Clear() error {
	return c.store.Clear()
}
