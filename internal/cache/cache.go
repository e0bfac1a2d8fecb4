package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// CacheKey builds a namespaced key from the parts of a request.
// Parts are length-prefixed so that ("ab","c") and ("a","bc") differ.
func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte{byte(len(p) >> 24), byte(len(p) >> 16), byte(len(p) >> 8), byte(len(p))})
		h.Write([]byte(p))
	}
	prefix := "lexscan:v1:"
	if len(parts) > 0 {
		prefix += strings.ToLower(parts[0]) + ":"
	}
	return prefix + hex.EncodeToString(h.Sum(nil))
}
