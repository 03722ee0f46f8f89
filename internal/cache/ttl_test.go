package cache_test

import (
	"testing"
	"time"

	"github.com/XavierBriggs/vantage/internal/cache"
)

func TestGetMissOnAbsentKey(t *testing.T) {
	c := cache.NewTTL[string]()

	if _, ok := c.Get("nothing"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestSetThenGet(t *testing.T) {
	c := cache.NewTTL[int]()

	c.Set("answer", 42, time.Minute)

	got, ok := c.Get("answer")
	if !ok {
		t.Fatal("expected hit for fresh entry")
	}
	if got != 42 {
		t.Errorf("Get = %d, want 42", got)
	}
}

func TestExpiredEntryMissesAndEvicts(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := cache.NewTTLWithClock[string](func() time.Time { return clock() })

	c.Set("k", "v", 30*time.Second)

	// Still fresh at 29s
	now = now.Add(29 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit before TTL elapses")
	}

	// Expired at 31s
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after TTL elapses")
	}

	if c.Len() != 0 {
		t.Errorf("expected lazy eviction on read, still have %d entries", c.Len())
	}
}

func TestLastWriterWins(t *testing.T) {
	c := cache.NewTTL[string]()

	c.Set("k", "first", time.Minute)
	c.Set("k", "second", time.Minute)

	got, ok := c.Get("k")
	if !ok || got != "second" {
		t.Errorf("Get = %q, %v; want \"second\", true", got, ok)
	}
}

func TestRewriteResetsExpiry(t *testing.T) {
	now := time.Now()
	c := cache.NewTTLWithClock[int](func() time.Time { return now })

	c.Set("k", 1, time.Minute)
	now = now.Add(50 * time.Second)
	c.Set("k", 2, time.Minute)
	now = now.Add(50 * time.Second)

	// 100s after the first write but only 50s after the second
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit, rewrite should reset cachedAt")
	}
	if got != 2 {
		t.Errorf("Get = %d, want 2", got)
	}
}
