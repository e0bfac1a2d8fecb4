package cache

import (
	"strings"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Errorf("Expected v, got %q (found=%v)", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("short", []byte("v"), 20*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get("short"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestCacheKey(t *testing.T) {
	k1 := CacheKey("ner", "openai", "text")
	k2 := CacheKey("ner", "openai", "text")
	if k1 != k2 {
		t.Error("Expected deterministic keys")
	}
	if !strings.HasPrefix(k1, "lexscan:v1:ner:") {
		t.Errorf("Unexpected prefix: %s", k1)
	}
	if CacheKey("ab", "c") == CacheKey("a", "bc") {
		t.Error("Expected part boundaries to change the key")
	}
}
