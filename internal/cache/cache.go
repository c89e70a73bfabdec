// Package cache caches reconciliation results so batch runs skip
// reports whose content has not changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from report content
func Key(content []byte) string {
	hash := sha256.Sum256(content)
	return "riskfuse:v1:" + hex.EncodeToString(hash[:])
}
