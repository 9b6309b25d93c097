package cache

import (
	"encoding/json"
	"time"
)

// CacheEntry is one cached report on disk.
//
//nolint:revive // CacheEntry reads better than Entry at call sites.
type CacheEntry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// NewCacheEntry stamps data with a creation time and an expiry ttl later.
func NewCacheEntry(key string, data json.RawMessage, ttl time.Duration) *CacheEntry {
	now := time.Now().UTC()
	return &CacheEntry{
		Key:       key,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the entry is past its expiry.
func (e *CacheEntry) IsExpired() bool {
	return !time.Now().Before(e.ExpiresAt)
}

// Age is the time since the entry was written.
func (e *CacheEntry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}
