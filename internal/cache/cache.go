package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface every cache layer implements. Caches are
// best-effort: callers must treat misses and Set failures as non-fatal.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from an arbitrary identifier (URL,
// keyword, profile handle). Hashing keeps keys filesystem-safe for the
// disk layer.
func Key(id string) string {
	sum := sha256.Sum256([]byte(id))
	return "aeoscan:v1:" + hex.EncodeToString(sum[:])
}

// Nop is a cache that stores nothing, used when caching is disabled
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)               { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                     { return nil }
func (Nop) Clear() error                            { return nil }
