package cache

import (
	"testing"
	"time"
)

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU[string, int](Config{MaxSize: 2})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v; want 3, true", v, ok)
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("evictions = %d, want 1", got)
	}
}

func TestLRUGetRefreshesRecency(t *testing.T) {
	c := NewLRU[string, int](Config{MaxSize: 2})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	if _, ok := c.Get("a"); !ok {
		t.Error("recently read entry was evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry survived eviction")
	}
}

func TestLRUTTLExpiry(t *testing.T) {
	c := NewLRU[string, int](Config{MaxSize: 10, TTL: 10 * time.Millisecond})

	c.Put("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("fresh entry missing")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry still served")
	}
}

func TestKeyStability(t *testing.T) {
	type opts struct {
		Book    string
		MaxHops int
	}

	a := Key("sin", opts{Book: "Romans", MaxHops: 1})
	b := Key("sin", opts{Book: "Romans", MaxHops: 1})
	if a != b {
		t.Errorf("identical inputs produced different keys: %s vs %s", a, b)
	}

	if Key("sin", opts{}) == Key("grace", opts{}) {
		t.Error("different concepts produced the same key")
	}
	if Key("sin", opts{MaxHops: 1}) == Key("sin", opts{MaxHops: 2}) {
		t.Error("different options produced the same key")
	}
	if Key("sin", nil) == Key("sin\x00", nil) {
		t.Error("concept boundary is ambiguous")
	}
}
