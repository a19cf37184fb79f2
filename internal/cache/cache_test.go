package cache

import (
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected hit with value v, got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	key := Key("https://example.com/page")
	if err := c.Set(key, []byte("body"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found || string(val) != "body" {
		t.Errorf("Expected disk hit, got %q found=%v", val, found)
	}

	// Expired entries are removed on read.
	if err := c.Set(key, []byte("body"), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("Expected expired entry to miss")
	}
	if _, found := c.Get(key); found {
		t.Error("Expected expired entry to stay gone")
	}

	if err := c.Delete(Key("never-set")); err != nil {
		t.Errorf("Delete of missing key must not error, got %v", err)
	}
}

func TestLayeredCachePromotion(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	key := Key("promote-me")
	// Write only to the disk layer directly.
	if err := layered.disk.Set(key, []byte("cold"), time.Minute); err != nil {
		t.Fatalf("disk Set failed: %v", err)
	}

	val, found := layered.Get(key)
	if !found || string(val) != "cold" {
		t.Fatalf("Expected disk hit through layered cache, got found=%v", found)
	}

	// Now present in memory too.
	if _, found := layered.memory.Get(key); !found {
		t.Error("Expected disk hit to be promoted to memory")
	}
}

func TestKeyStability(t *testing.T) {
	a := Key("https://example.com")
	b := Key("https://example.com")
	c := Key("https://example.org")

	if a != b {
		t.Error("Expected identical keys for identical input")
	}
	if a == c {
		t.Error("Expected different keys for different input")
	}
}
