package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 42, time.Minute)
	value, ok := c.Get("a")
	if !ok || value != 42 {
		t.Fatalf("expected (42, true), got (%d, %v)", value, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, string]()

	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[string, string]()

	c.Set("k", "v", 0)
	time.Sleep(10 * time.Millisecond)

	value, ok := c.Get("k")
	if !ok || value != "v" {
		t.Fatalf("expected persistent entry, got (%q, %v)", value, ok)
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("k", 1, time.Minute)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry removed")
	}
}

func TestTTLCacheOverwrite(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("k", 1, time.Minute)
	c.Set("k", 2, time.Minute)

	value, ok := c.Get("k")
	if !ok || value != 2 {
		t.Fatalf("expected (2, true), got (%d, %v)", value, ok)
	}
}

func TestTTLCacheNilReceiver(t *testing.T) {
	var c *TTLCache[string, int]

	c.Set("k", 1, time.Minute)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("nil cache must always miss")
	}
}
